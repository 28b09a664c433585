package datamodel

import (
	functionalareaDatamodel "github.com/frahmantamala/toolbox/internal/core/datamodel/functionalarea"
	permissionDatamodel "github.com/frahmantamala/toolbox/internal/core/datamodel/permission"
	referenceDatamodel "github.com/frahmantamala/toolbox/internal/core/datamodel/reference"
	roleDatamodel "github.com/frahmantamala/toolbox/internal/core/datamodel/role"
	taskDatamodel "github.com/frahmantamala/toolbox/internal/core/datamodel/task"
	userDatamodel "github.com/frahmantamala/toolbox/internal/core/datamodel/user"
)

// All lists every persisted model in dependency order.
func All() []interface{} {
	return []interface{}{
		&roleDatamodel.Role{},
		&userDatamodel.User{},
		&permissionDatamodel.Permission{},
		&functionalareaDatamodel.FunctionalArea{},
		&referenceDatamodel.ReferenceEntry{},
		&taskDatamodel.Task{},
	}
}
