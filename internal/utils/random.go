package utils

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/turnoshq/roster-manager/backend/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

var commonFirstNames = []string{
	"Lucia", "Marco", "Elena", "Jorge", "Rosa", "Pedro", "Carla", "Diego",
	"Sofia", "Andres", "Valeria", "Hector", "Camila", "Raul", "Paula", "Ivan",
	"Marta", "Oscar", "Irene", "Felipe",
}

var commonSurnames = []string{
	"Garcia", "Martinez", "Lopez", "Hernandez", "Gonzalez", "Perez", "Sanchez",
	"Ramirez", "Torres", "Flores", "Rivera", "Gomez", "Diaz", "Cruz", "Morales",
	"Ortiz", "Castillo", "Romero", "Vargas", "Mendoza",
}

func GenerateRandomFullName() string {
	first := commonFirstNames[rand.Intn(len(commonFirstNames))]
	surname := commonSurnames[rand.Intn(len(commonSurnames))]
	return first + " " + surname
}

var digits = "0123456789"

func GenerateUsernameFromFullName(fullName string) string {
	parts := strings.Fields(fullName)
	username := strings.ToLower(parts[0])
	for _, part := range parts[1:] {
		username += strings.ToLower(part[:1])
	}

	digitsLength := rand.Intn(3) + 1
	for i := 0; i < digitsLength; i++ {
		username += string(digits[rand.Intn(len(digits))])
	}

	return username
}

func GenerateRandomCoordinator(password string, emailDomainName string) (*domain.Coordinator, error) {
	fullName := GenerateRandomFullName()
	username := GenerateUsernameFromFullName(fullName)
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	coordinator := &domain.Coordinator{
		Username:     username,
		PasswordHash: string(passwordHash),
		FullName:     fullName,
		Email:        username + "@" + emailDomainName,
		Role:         domain.RoleCoordinator,
	}

	return coordinator, nil
}

// GenerateRandomWorker builds a worker for the given pool. Roughly one in
// four gets no fixed band and falls back to the rotation pattern, matching
// the mix the legacy rosters had.
func GenerateRandomWorker(pool string, coordinatorID *int64) *domain.Worker {
	worker := &domain.Worker{
		Name:          GenerateRandomFullName(),
		HomePool:      pool,
		CoordinatorID: coordinatorID,
		BorrowStatus:  domain.BorrowNone,
	}

	if rand.Intn(4) != 0 {
		band := domain.Bands[rand.Intn(len(domain.Bands))]
		worker.PreferredBand = &band
	}

	return worker
}

func GenerateRandomOTP() string {
	return fmt.Sprintf("%06d", rand.Intn(1000000))
}

var letters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*")

func GenerateRandomPassword(length int) string {
	random_password := make([]rune, length)
	for i := range random_password {
		random_password[i] = letters[rand.Intn(len(letters))]
	}
	return string(random_password)
}
