package handlers

import "residence-hub/internal/models"

type MenuItem struct {
	Name string
	Icon string
	Href string
}

type menuEntry struct {
	MenuItem
	roles []models.UserRole
}

var everyone = models.AllRoles

var menu = []menuEntry{
	{MenuItem{"Tablero", "grid_view", "/"}, everyone},
	{MenuItem{"Unidad Residencial", "home", "/units"}, []models.UserRole{models.RoleSuperAdmin, models.RoleAdmin}},
	{MenuItem{"Visitantes", "emoji_people", "/visitors"}, []models.UserRole{models.RoleSuperAdmin, models.RoleAdmin, models.RoleGatekeeper}},
	{MenuItem{"Mensajes", "chat", "/messages"}, everyone},
	{MenuItem{"Eventos", "event", "/events"}, everyone},
	{MenuItem{"Reservas", "event_available", "/reservations"}, everyone},
	{MenuItem{"Cuentas", "payments", "/accounts"}, []models.UserRole{models.RoleSuperAdmin, models.RoleAccountant}},
	{MenuItem{"Auditoría", "history", "/audit"}, []models.UserRole{models.RoleSuperAdmin, models.RoleAdmin}},
	{MenuItem{"Perfil", "person", "/profile"}, everyone},
}

// Roles для маршрута; тот же список, что и в меню, чтобы не расходились
func Roles(href string) []models.UserRole {
	for _, e := range menu {
		if e.Href == href {
			return e.roles
		}
	}
	return nil
}

// MenuFor возвращает пункты бокового меню, доступные роли
func MenuFor(role models.UserRole) []MenuItem {
	var out []MenuItem
	for _, e := range menu {
		for _, r := range e.roles {
			if r == role {
				out = append(out, e.MenuItem)
				break
			}
		}
	}
	return out
}
