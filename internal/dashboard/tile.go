package dashboard

import "github.com/frahmantamala/toolbox/internal/screens"

type Tile struct {
	ID              int64  `json:"id"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	Link            string `json:"link"`
	Icon            string `json:"icon"`
	Enabled         bool   `json:"enabled"`
	ShowInMenu      bool   `json:"show_in_menu"`
	ShowInDashboard bool   `json:"show_in_dashboard"`
	AdminOnly       bool   `json:"admin_only"`
	Order           int    `json:"order"`
}

func FromScreen(s screens.ScreenConfig) Tile {
	return Tile{
		ID:              int64(s.ID),
		Title:           s.Title,
		Description:     s.Description,
		Link:            s.Link,
		Icon:            s.Icon,
		Enabled:         s.Enabled,
		ShowInMenu:      s.ShowInMenu,
		ShowInDashboard: s.ShowInDashboard,
		AdminOnly:       s.AdminOnly(),
		Order:           s.Order,
	}
}
