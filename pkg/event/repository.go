package event

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

func (r repository) create(event *model.Event) error {
	return r.db.Create(&event).Error
}

func (r repository) save(event *model.Event) error {
	return r.db.Save(&event).Error
}

func (r repository) findAll() ([]*model.Event, error) {
	var events []*model.Event

	err := r.db.
		Preload("Attendees").
		Order("Date").
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find all events: %v", err)
	}

	return events, nil
}

func (r repository) findAllByAttendee(userID uint) ([]*model.Event, error) {
	var events []*model.Event

	err := r.db.
		Preload("Attendees").
		Joins("JOIN event_attendees ON event_attendees.event_id = events.id").
		Where("event_attendees.user_id = ?", userID).
		Order("Date").
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find events for attendee %d: %v", userID, err)
	}

	return events, nil
}

func (r repository) findById(id uint) (*model.Event, error) {
	var event *model.Event
	err := r.db.
		Preload("Attendees").
		First(&event, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errdef.NewNotFound("event not found")
	}
	return event, err
}

// delete removes the event, its attendee links and every task referencing it
// in one transaction so no orphan tasks can remain.
func (r repository) delete(event *model.Event) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_id = ?", event.ID).Delete(&model.Task{}).Error; err != nil {
			return fmt.Errorf("failed to delete tasks of event %d: %v", event.ID, err)
		}
		if err := tx.Model(event).Association("Attendees").Clear(); err != nil {
			return fmt.Errorf("failed to clear attendees of event %d: %v", event.ID, err)
		}
		if err := tx.Delete(event).Error; err != nil {
			return fmt.Errorf("failed to delete event %d: %v", event.ID, err)
		}
		return nil
	})
}

func (r repository) addAttendee(event *model.Event, user *model.User) error {
	return r.db.Model(event).Association("Attendees").Append(user)
}

func (r repository) removeAttendee(event *model.Event, user *model.User) error {
	return r.db.Model(event).Association("Attendees").Delete(user)
}
