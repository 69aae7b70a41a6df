// Package auth provides authentication and authorisation for OfficeGrid Core.
//
// It implements a 2-tier role model (user → admin) with:
//   - Argon2id password hashing (OWASP 2025 recommendation)
//   - Short-lived JWT access tokens carrying username and role
//   - Case-insensitive usernames (enforced by COLLATE NOCASE in the schema)
//   - Last-administrator protection on role change and deletion
//
// A successful login publishes a user_login facility event so automation
// rules can react (for example reserving a parking spot for the user).
package auth
