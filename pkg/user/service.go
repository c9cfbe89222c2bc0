package user

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/gatherly/event-manager/internal/errdef"
	"github.com/gatherly/event-manager/pkg/model"
	"golang.org/x/crypto/scrypt"
)

func NewService(repository userRepository) *Service {
	return &Service{
		repository: repository,
	}
}

type userRepository interface {
	create(user *model.User) error
	save(user *model.User) error
	findAll() ([]*model.User, error)
	findByEmail(email string) (*model.User, error)
	findById(id uint) (*model.User, error)
	findOrCreate(user *model.User) (*model.User, error)
}

type Service struct {
	repository userRepository
}

func (s Service) SignUp(name, email, password string) (*model.User, error) {
	hashedPassword, err := hashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("password hashing failed: %s", err)
	}

	user := &model.User{
		Name:     name,
		Email:    email,
		Password: hashedPassword,
		Role:     model.RoleUser,
	}

	err = s.repository.create(user)
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (s Service) SignIn(email, password string) (*model.User, error) {
	unauthorizedError := "invalid email and password combination"

	user, err := s.repository.findByEmail(email)
	if err != nil {
		if errdef.IsNotFound(err) {
			return nil, errdef.NewUnauthorized("%s", unauthorizedError)
		}
		return nil, err
	}

	match, err := comparePasswords(user.Password, password)
	if err != nil {
		return nil, fmt.Errorf("password hashing failed: %s", err)
	}

	if !match {
		return nil, errdef.NewUnauthorized("%s", unauthorizedError)
	}

	return user, nil
}

// UpdateProfile changes the user's name and password. Either field may be
// empty in which case it is left as is.
func (s Service) UpdateProfile(id uint, name, password string) (*model.User, error) {
	user, err := s.repository.findById(id)
	if err != nil {
		return nil, err
	}

	if name != "" {
		user.Name = name
	}

	if password != "" {
		hashedPassword, err := hashPassword(password)
		if err != nil {
			return nil, fmt.Errorf("password hashing failed: %s", err)
		}
		user.Password = hashedPassword
	}

	err = s.repository.save(user)
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (s Service) FindById(id uint) (*model.User, error) {
	return s.repository.findById(id)
}

func (s Service) FindAll() ([]*model.User, error) {
	return s.repository.findAll()
}

func (s Service) Save(user *model.User) error {
	return s.repository.save(user)
}

func (s Service) FindOrCreate(name, email, password, role string) (*model.User, error) {
	hashedPassword, err := hashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("password hashing failed: %s", err)
	}

	return s.repository.findOrCreate(&model.User{
		Name:     name,
		Email:    email,
		Password: hashedPassword,
		Role:     role,
	})
}

func hashPassword(password string) (string, error) {
	// example for making salt - https://play.golang.org/p/_Aw6WeWC42I
	salt := make([]byte, 32)
	_, err := rand.Read(salt)
	if err != nil {
		return "", err
	}

	// using recommended cost parameters from - https://godoc.org/golang.org/x/crypto/scrypt
	hash, err := scrypt.Key([]byte(password), salt, 32768, 8, 1, 32)
	if err != nil {
		return "", err
	}

	hashedPassword := fmt.Sprintf("%s.%s", hex.EncodeToString(hash), hex.EncodeToString(salt))

	return hashedPassword, nil
}

func comparePasswords(storedPassword string, suppliedPassword string) (bool, error) {
	passwordAndSalt := strings.Split(storedPassword, ".")
	if len(passwordAndSalt) != 2 {
		return false, fmt.Errorf("wrong password/salt format")
	}

	salt, err := hex.DecodeString(passwordAndSalt[1])
	if err != nil {
		return false, fmt.Errorf("unable to verify user password")
	}

	hash, err := scrypt.Key([]byte(suppliedPassword), salt, 32768, 8, 1, 32)
	if err != nil {
		return false, err
	}

	stored, err := hex.DecodeString(passwordAndSalt[0])
	if err != nil {
		return false, fmt.Errorf("unable to verify user password")
	}

	return subtle.ConstantTimeCompare(hash, stored) == 1, nil
}
