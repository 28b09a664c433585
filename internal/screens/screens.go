package screens

// RoleUser is the role whose default permission decides whether a screen is admin-only.
const RoleUser = "USER"

type Config struct {
	Screens []ScreenConfig `json:"screens"`
}

type DefaultPermission struct {
	CanRead  bool `json:"canRead"`
	CanWrite bool `json:"canWrite"`
}

type ScreenConfig struct {
	ID                 int                          `json:"id"`
	Title              string                       `json:"title"`
	Description        string                       `json:"description"`
	Link               string                       `json:"link"`
	Icon               string                       `json:"icon"`
	Enabled            bool                         `json:"enabled"`
	ShowInMenu         bool                         `json:"showInMenu"`
	ShowInDashboard    bool                         `json:"showInDashboard"`
	Order              int                          `json:"order"`
	DefaultPermissions map[string]DefaultPermission `json:"defaultPermissions"`
}

// AdminOnly reports whether plain users get nothing on this screen by default:
// the USER entry is missing or grants neither read nor write.
func (s ScreenConfig) AdminOnly() bool {
	p, ok := s.DefaultPermissions[RoleUser]
	return !ok || (!p.CanRead && !p.CanWrite)
}
