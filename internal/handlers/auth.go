package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"residence-hub/internal/auth"
	"residence-hub/internal/database"
	"residence-hub/internal/middleware"
	"residence-hub/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func (h *Handler) ShowLogin(c *gin.Context) {
	render(c, http.StatusOK, "login.html", gin.H{
		"error": "",
		"roles": models.AllRoles,
	})
}

type loginForm struct {
	Email    string `form:"email"`
	Password string `form:"password"`
	Role     string `form:"role"`
}

func (h *Handler) Login(c *gin.Context) {
	var form loginForm
	if err := c.ShouldBind(&form); err != nil {
		log.Printf("login form bind: %v", err)
	}
	form.Email = strings.TrimSpace(strings.ToLower(form.Email))

	loginError := func(status int, msg string) {
		render(c, status, "login.html", gin.H{
			"error": msg,
			"email": form.Email,
			"roles": models.AllRoles,
		})
	}

	if form.Email == "" || form.Password == "" {
		loginError(http.StatusBadRequest, "El correo y la contraseña son obligatorios")
		return
	}

	var user models.User
	if err := database.DB.Where("email = ?", form.Email).First(&user).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("login lookup %s: %v", form.Email, err)
			loginError(http.StatusInternalServerError, "Algo salió mal")
			return
		}
		loginError(http.StatusUnauthorized, "Usuario no encontrado")
		return
	}

	if !auth.CheckPassword(user.PasswordHash, form.Password) {
		loginError(http.StatusUnauthorized, "Credenciales inválidas")
		return
	}

	// селектор роли на форме входа необязателен
	if form.Role != "" && models.UserRole(form.Role) != user.Role {
		loginError(http.StatusForbidden, "Acceso denegado. No tienes autorización como "+models.UserRole(form.Role).Label())
		return
	}

	token, err := h.tokens.Issue(user)
	if err != nil {
		log.Printf("issue token for %d: %v", user.ID, err)
		loginError(http.StatusInternalServerError, "Algo salió mal")
		return
	}

	maxAge := int(h.tokens.TTL() / time.Second)
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AuthCookie, token, maxAge, "/", "", h.secure, true)
	// роль читает клиентский JS, поэтому без httpOnly
	c.SetCookie(middleware.RoleCookie, string(user.Role), maxAge, "/", "", h.secure, false)

	setFlash(c, success("Inicio de sesión exitoso"))
	c.Redirect(http.StatusFound, "/")
}

func (h *Handler) Logout(c *gin.Context) {
	c.SetCookie(middleware.AuthCookie, "", -1, "/", "", h.secure, true)
	c.SetCookie(middleware.RoleCookie, "", -1, "/", "", h.secure, false)

	sess := sessions.Default(c)
	sess.Clear()
	_ = sess.Save()
	c.Redirect(http.StatusFound, "/login")
}

func (h *Handler) ShowRegister(c *gin.Context) {
	render(c, http.StatusOK, "register.html", gin.H{
		"error":     "",
		"buildings": buildingOptions(),
	})
}

type familyMemberInput struct {
	Name     string `json:"name"`
	Gender   string `json:"gender"`
	DOB      string `json:"dob"`
	Relation string `json:"relation"`
}

type registerForm struct {
	Email         string `form:"email"`
	Password      string `form:"password"`
	FirstName     string `form:"firstName"`
	MiddleName    string `form:"middleName"`
	LastName      string `form:"lastName"`
	DOB           string `form:"dob"`
	Gender        string `form:"gender"`
	MobileNumber  string `form:"mobileNumber"`
	Address       string `form:"address"`
	Status        string `form:"status"`
	OccupiedDate  string `form:"occupiedDate"`
	UnitID        string `form:"unitId"`
	Role          string `form:"role"`
	FamilyMembers string `form:"familyMembers"`
}

// registration собирает пользователя, профиль и семью из формы
type registration struct {
	user    models.User
	profile models.MemberProfile
	family  []models.FamilyMember
}

// registrationRole: через форму можно стать только MEMBER / ACCOUNTANT / STAFF / GATEKEEPER
func registrationRole(s string) models.UserRole {
	if r, ok := models.ParseRole(s); ok && r.SelfRegistrable() {
		return r
	}
	return models.RoleMember
}

func parseRegistration(form registerForm, loc *time.Location) (*registration, error) {
	form.Email = strings.TrimSpace(strings.ToLower(form.Email))
	form.FirstName = strings.TrimSpace(form.FirstName)
	form.LastName = strings.TrimSpace(form.LastName)
	if form.Email == "" || form.Password == "" || form.FirstName == "" || form.LastName == "" {
		return nil, errMissingFields
	}

	var family []familyMemberInput
	if raw := strings.TrimSpace(form.FamilyMembers); raw != "" {
		if err := json.Unmarshal([]byte(raw), &family); err != nil {
			return nil, errBadFamily
		}
	}

	hash, err := auth.HashPassword(form.Password)
	if err != nil {
		return nil, err
	}

	reg := &registration{
		user: models.User{
			Email:        form.Email,
			PasswordHash: hash,
			Name:         form.FirstName + " " + form.LastName,
			Role:         registrationRole(form.Role),
		},
		profile: models.MemberProfile{
			FirstName:    form.FirstName,
			MiddleName:   strings.TrimSpace(form.MiddleName),
			LastName:     form.LastName,
			DOB:          optionalDate(form.DOB, loc),
			Gender:       form.Gender,
			MobileNumber: strings.TrimSpace(form.MobileNumber),
			Address:      strings.TrimSpace(form.Address),
			Status:       form.Status,
			OccupiedDate: optionalDate(form.OccupiedDate, loc),
		},
	}
	if id, err := strconv.ParseUint(form.UnitID, 10, 64); err == nil && id > 0 {
		unitID := uint(id)
		reg.profile.UnitID = &unitID
	}
	for _, fm := range family {
		if strings.TrimSpace(fm.Name) == "" {
			continue
		}
		reg.family = append(reg.family, models.FamilyMember{
			Name:     strings.TrimSpace(fm.Name),
			Gender:   fm.Gender,
			DOB:      optionalDate(fm.DOB, loc),
			Relation: fm.Relation,
		})
	}
	return reg, nil
}

var (
	errMissingFields = errors.New("missing fields")
	errBadFamily     = errors.New("bad family members payload")
)

func optionalDate(s string, loc *time.Location) *time.Time {
	t, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(s), loc)
	if err != nil {
		return nil
	}
	return &t
}

func (h *Handler) Register(c *gin.Context) {
	var form registerForm
	if err := c.ShouldBind(&form); err != nil {
		log.Printf("register form bind: %v", err)
	}

	registerError := func(status int, msg string) {
		render(c, status, "register.html", gin.H{
			"error":     msg,
			"buildings": buildingOptions(),
		})
	}

	reg, err := parseRegistration(form, h.loc)
	switch {
	case errors.Is(err, errMissingFields):
		registerError(http.StatusBadRequest, "Faltan campos obligatorios")
		return
	case errors.Is(err, errBadFamily):
		registerError(http.StatusBadRequest, "Datos de familiares no válidos")
		return
	case err != nil:
		log.Printf("register: %v", err)
		registerError(http.StatusInternalServerError, "Algo salió mal")
		return
	}

	// пользователь, профиль и семья в одной транзакции
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&reg.user).Error; err != nil {
			return err
		}
		reg.profile.UserID = reg.user.ID
		if err := tx.Create(&reg.profile).Error; err != nil {
			return err
		}
		for i := range reg.family {
			reg.family[i].UserID = reg.user.ID
		}
		if len(reg.family) > 0 {
			if err := tx.Create(&reg.family).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Printf("register %s: %v", reg.user.Email, err)
		registerError(http.StatusBadRequest, "Error en el registro. El correo podría estar duplicado.")
		return
	}

	database.CreateAuditLog(reg.user.ID, "user", reg.user.ID, "register", "Registrado miembro "+reg.user.Email)

	setFlash(c, success("Miembro registrado exitosamente"))
	c.Redirect(http.StatusFound, "/login")
}

func buildingOptions() []models.Building {
	var buildings []models.Building
	if err := database.DB.Preload("Units", func(db *gorm.DB) *gorm.DB {
		return db.Order("name asc")
	}).Order("name asc").Find(&buildings).Error; err != nil {
		log.Printf("load buildings: %v", err)
	}
	return buildings
}
