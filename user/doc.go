// Package user provides the User resource module: account registration,
// account-kit authentication and the profile of the current session.
package user
