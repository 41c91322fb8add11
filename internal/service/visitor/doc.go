// Package visitor implements visitor lifecycle management: creation,
// onboarding setup, milestone updates, and status transitions.
//
// The service layer contains all business logic for the onboarding program.
// It depends on the repository interface defined in this package and should
// never import from api/.
//
// Repository implementations live in repository/postgres/.
package visitor
