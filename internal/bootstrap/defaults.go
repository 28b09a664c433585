package bootstrap

import (
	"github.com/frahmantamala/toolbox/internal/functionalarea"
	"github.com/frahmantamala/toolbox/internal/role"
)

var defaultRoles = []role.SaveRoleDTO{
	{Name: "ADMIN", Description: "Administrator with full access"},
	{Name: "USER", Description: "Standard user"},
}

type sampleUser struct {
	username string
	fullName string
	email    string
	roles    []string
}

var sampleUsers = []sampleUser{
	{username: "admin", fullName: "Alice Administrator", email: "alice@example.com", roles: []string{"ADMIN", "USER"}},
	{username: "user", fullName: "Ursula User", email: "ursula@example.com", roles: []string{"USER"}},
}

var defaultFunctionalAreas = []functionalarea.FunctionalArea{
	{Code: "FI", Name: "Financial", Description: "Financial operations and accounting"},
	{Code: "DE", Name: "Delivery", Description: "Package delivery and logistics"},
	{Code: "WH", Name: "Warehouse", Description: "Inventory management and storage"},
	{Code: "CS", Name: "Customer Service", Description: "Customer support and relations"},
	{Code: "OP", Name: "Operations", Description: "Daily operational activities"},
	{Code: "HR", Name: "Human Resources", Description: "Staff management and administration"},
	{Code: "IT", Name: "Information Technology", Description: "Technology support and systems"},
	{Code: "SE", Name: "Security", Description: "Facility and cargo security"},
	{Code: "QA", Name: "Quality Assurance", Description: "Quality control and compliance"},
	{Code: "MN", Name: "Maintenance", Description: "Equipment and facility maintenance"},
}
