// Package models holds the gorm persistence models. They are the
// anti-corruption layer between the domain and the database.
package models

// All lists every model in dependency order, for AutoMigrate.
func All() []interface{} {
	return []interface{}{
		&PlanModel{},
		&TenantModel{},
		&SubscriptionModel{},
		&UserModel{},
	}
}
