package task

import (
	"errors"
	"fmt"

	"github.com/gatherly/event-manager/internal/errdef"
	"github.com/gatherly/event-manager/pkg/model"
	"gorm.io/gorm"
)

//goland:noinspection GoExportedFuncWithUnexportedType
func NewRepository(db *gorm.DB) *repository {
	return &repository{db}
}

type repository struct {
	db *gorm.DB
}

func (r repository) create(task *model.Task) error {
	return r.db.Create(&task).Error
}

func (r repository) save(task *model.Task) error {
	return r.db.Save(&task).Error
}

func (r repository) findById(id uint) (*model.Task, error) {
	var task *model.Task
	err := r.db.
		Preload("AssignedAttendee").
		First(&task, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errdef.NewNotFound("task not found")
	}
	return task, err
}

func (r repository) findAllByEvent(eventID uint) ([]*model.Task, error) {
	var tasks []*model.Task

	err := r.db.
		Preload("AssignedAttendee").
		Where("event_id = ?", eventID).
		Order("Deadline").
		Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find tasks for event %d: %v", eventID, err)
	}

	return tasks, nil
}

func (r repository) findAllByEventAndAssignee(eventID uint, userID uint) ([]*model.Task, error) {
	var tasks []*model.Task

	err := r.db.
		Preload("AssignedAttendee").
		Where("event_id = ? AND assigned_attendee_id = ?", eventID, userID).
		Order("Deadline").
		Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find tasks for event %d and assignee %d: %v", eventID, userID, err)
	}

	return tasks, nil
}

func (r repository) countByEvent(eventID uint) (int64, error) {
	var count int64
	err := r.db.
		Model(&model.Task{}).
		Where("event_id = ?", eventID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count tasks for event %d: %v", eventID, err)
	}
	return count, nil
}

func (r repository) countByEventAndStatus(eventID uint, status string) (int64, error) {
	var count int64
	err := r.db.
		Model(&model.Task{}).
		Where("event_id = ? AND status = ?", eventID, status).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count %s tasks for event %d: %v", status, eventID, err)
	}
	return count, nil
}

func (r repository) findEventById(id uint) (*model.Event, error) {
	var event *model.Event
	err := r.db.First(&event, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errdef.NewNotFound("associated event not found")
	}
	return event, err
}
