package database

import (
	"log"
	"time"

	"residence-hub/internal/auth"
	"residence-hub/internal/models"

	"gorm.io/gorm"
)

// Seed заполняет пустую базу демо-данными; повторный запуск ничего не дублирует
func Seed(adminEmail, adminPassword string) {
	createDefaultAdmin(adminEmail, adminPassword)
	seedDefaultUsers()
	seedAmenities(DB)
	seedBuildings()
	seedNotices()
	seedInvoices()
	seedMessages()
}

// админ только из кода/конфига
// newUser хеширует пароль тем же способом, что и регистрация
func newUser(email, name, password string, role models.UserRole) (models.User, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return models.User{}, err
	}
	return models.User{Email: email, Name: name, PasswordHash: hash, Role: role}, nil
}

func createDefaultAdmin(email, password string) {
	var count int64
	if err := DB.Model(&models.User{}).
		Where("role = ?", models.RoleSuperAdmin).
		Count(&count).Error; err != nil {
		log.Printf("failed to check admin user: %v", err)
		return
	}
	if count > 0 {
		return
	}

	admin, err := newUser(email, "Super Admin", password, models.RoleSuperAdmin)
	if err != nil {
		log.Printf("failed to hash default admin password: %v", err)
		return
	}
	if err := DB.Create(&admin).Error; err != nil {
		log.Printf("failed to create default admin: %v", err)
		return
	}

	log.Printf("created default admin user: %s", email)
}

// пара тестовых жильцов для демо
func seedDefaultUsers() {
	type seedUser struct {
		Email    string
		Name     string
		Password string
		Role     models.UserRole
	}

	users := []seedUser{
		{Email: "user2@example.com", Name: "María López", Password: "password123", Role: models.RoleMember},
		{Email: "user3@example.com", Name: "Carlos Pérez", Password: "password123", Role: models.RoleMember},
	}

	for _, u := range users {
		var count int64
		if err := DB.Model(&models.User{}).
			Where("email = ?", u.Email).
			Count(&count).Error; err != nil {
			log.Printf("failed to check seed user %s: %v", u.Email, err)
			continue
		}
		if count > 0 {
			continue
		}

		user, err := newUser(u.Email, u.Name, u.Password, u.Role)
		if err != nil {
			log.Printf("failed to hash password for %s: %v", u.Email, err)
			continue
		}
		if err := DB.Create(&user).Error; err != nil {
			log.Printf("failed to create seed user %s: %v", u.Email, err)
			continue
		}

		log.Printf("created seed user: %s (role=%s)", u.Email, u.Role)
	}
}

var defaultAmenities = []models.Amenity{
	{Name: "Piscina", Description: "Piscina climatizada"},
	{Name: "Salón Social", Description: "Salón para eventos"},
	{Name: "Zona BBQ", Description: "Área de parrillas"},
	{Name: "Gimnasio", Description: "Gimnasio equipado"},
}

func seedAmenities(db *gorm.DB) {
	var count int64
	if err := db.Model(&models.Amenity{}).Count(&count).Error; err != nil {
		log.Printf("failed to check amenities: %v", err)
		return
	}
	if count > 0 {
		return
	}

	amenities := make([]models.Amenity, len(defaultAmenities))
	copy(amenities, defaultAmenities)
	if err := db.Create(&amenities).Error; err != nil {
		log.Printf("failed to seed amenities: %v", err)
	}
}

func seedBuildings() {
	var count int64
	if err := DB.Model(&models.Building{}).Count(&count).Error; err != nil || count > 0 {
		return
	}

	b := models.Building{
		Name: "Skyline Heights",
		Units: []models.Unit{
			{Name: "101", Category: "Residential"},
			{Name: "102", Category: "Residential"},
			{Name: "201", Category: "Residential"},
		},
	}
	if err := DB.Create(&b).Error; err != nil {
		log.Printf("failed to seed building: %v", err)
	}
}

func seedNotices() {
	var count int64
	if err := DB.Model(&models.Notice{}).Count(&count).Error; err != nil || count > 0 {
		return
	}

	now := time.Now()
	notices := []models.Notice{
		{
			Title:       "Mantenimiento de ascensores",
			Content:     "Los ascensores estarán fuera de servicio de 9:00 a 13:00.",
			Type:        "Maintenance",
			StartDate:   now,
			EndDate:     now.AddDate(0, 0, 2),
			BorderColor: "border-yellow-500",
			Status:      "Approved",
		},
		{
			Title:       "Asamblea general",
			Content:     "Asamblea de copropietarios en el Salón Social.",
			Type:        "Meeting",
			StartDate:   now.AddDate(0, 0, 7),
			EndDate:     now.AddDate(0, 0, 7),
			BorderColor: "border-blue-500",
			Status:      "Approved",
		},
	}
	if err := DB.Create(&notices).Error; err != nil {
		log.Printf("failed to seed notices: %v", err)
	}
}

func seedInvoices() {
	var count int64
	if err := DB.Model(&models.Invoice{}).Count(&count).Error; err != nil || count > 0 {
		return
	}

	var owners []models.User
	DB.Where("email IN ?", []string{"user2@example.com", "user3@example.com"}).Order("email").Find(&owners)
	if len(owners) < 2 {
		return
	}

	invoices := []models.Invoice{
		{ID: "INV-10234", Amount: 250, Status: "Paid", Category: "Maintenance", UserID: owners[0].ID},
		{ID: "INV-10235", Amount: 180.5, Status: "Unpaid", Category: "Utilities", UserID: owners[1].ID},
	}
	if err := DB.Create(&invoices).Error; err != nil {
		log.Printf("failed to seed invoices: %v", err)
	}
}

func seedMessages() {
	var count int64
	if err := DB.Model(&models.Message{}).Count(&count).Error; err != nil || count > 0 {
		return
	}

	var admin, member models.User
	if DB.Where("role = ?", models.RoleSuperAdmin).First(&admin).Error != nil {
		return
	}
	if DB.Where("email = ?", "user2@example.com").First(&member).Error != nil {
		return
	}

	messages := []models.Message{
		{SenderID: member.ID, ReceiverID: admin.ID, Content: "Hola, ¿cuándo se arregla la puerta del garaje?", AvatarColor: "bg-blue-500"},
		{SenderID: admin.ID, ReceiverID: member.ID, Content: "Mañana por la mañana viene el técnico.", AvatarColor: "bg-green-500"},
	}
	if err := DB.Create(&messages).Error; err != nil {
		log.Printf("failed to seed messages: %v", err)
	}
}
