package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bornholm/syscommerce/internal/nav"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

// ProviderLocal identifies users registered with a password.
const ProviderLocal = "local"

var userMigrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY,

		subject TEXT NOT NULL,
		provider TEXT NOT NULL,

		username TEXT NOT NULL,
		email TEXT,
		role TEXT NOT NULL,

		password_hash TEXT,

		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL,
		connected_at INTEGER,

		UNIQUE (subject, provider)
	);`,
}

type User struct {
	ID int64

	Provider string
	Subject  string

	Username string
	Email    string
	Role     nav.Role

	PasswordHash string

	CreatedAt   time.Time
	UpdatedAt   time.Time
	ConnectedAt time.Time
}

// AuthState returns the navigation view of the user.
func (u *User) AuthState() *nav.AuthState {
	return &nav.AuthState{
		UserName: u.Username,
		Role:     u.Role,
	}
}

// UserProvider implements authn.User.
func (u *User) UserProvider() string {
	return u.Provider
}

// UserSubject implements authn.User.
func (u *User) UserSubject() string {
	return u.Subject
}

func (s *Store) RegisterUser(ctx context.Context, username, email, password string, role nav.Role) (*User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, errors.New("username is required")
	}

	if len(password) < 8 {
		return nil, errors.New("password must be at least 8 characters long")
	}

	passwordHash, err := hashPassword(password)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	var user *User
	err = s.Tx(ctx, func(conn *sqlite.Conn) error {
		now := time.Now().UTC().Unix()

		query := fmt.Sprintf(`
			INSERT INTO users
				(subject, provider, username, email, role, password_hash, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?) RETURNING %s;`,
			userAttributes,
		)

		err := sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
			Args: []any{username, ProviderLocal, username, email, string(role), passwordHash, now, now},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				user = &User{}
				return errors.WithStack(s.bindUser(stmt, user))
			},
		})
		if err != nil {
			if sqlite.ErrCode(err) == sqlite.ResultConstraintUnique {
				return errors.Wrapf(ErrAlreadyExists, "user '%s'", username)
			}

			return errors.WithStack(err)
		}

		return nil
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return user, nil
}

func (s *Store) Authenticate(ctx context.Context, username, password string) (*User, error) {
	var user *User
	err := s.Do(ctx, func(conn *sqlite.Conn) error {
		query := fmt.Sprintf("SELECT %s FROM users WHERE subject = ? AND provider = ? LIMIT 1", userAttributes)
		err := sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
			Args: []any{strings.TrimSpace(username), ProviderLocal},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				user = &User{}
				return errors.WithStack(s.bindUser(stmt, user))
			},
		})
		if err != nil {
			return errors.WithStack(err)
		}

		return nil
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if user == nil || !verifyPassword(password, user.PasswordHash) {
		return nil, errors.WithStack(ErrUnauthenticated)
	}

	return user, nil
}

// FindOrCreateUser returns the user identified by the given OAuth2 subject and
// provider, creating it with the given role on first sign-in.
func (s *Store) FindOrCreateUser(ctx context.Context, subject, provider string, role nav.Role) (*User, error) {
	var user *User
	err := s.Tx(ctx, func(conn *sqlite.Conn) error {
		query := fmt.Sprintf(`SELECT %s FROM users WHERE subject = ? AND provider = ? LIMIT 1`, userAttributes)
		err := sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
			Args: []any{subject, provider},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				user = &User{}
				return errors.WithStack(s.bindUser(stmt, user))
			},
		})
		if err != nil {
			return errors.WithStack(err)
		}

		if user != nil {
			return nil
		}

		query = fmt.Sprintf(`
			INSERT INTO users
				(subject, provider, username, role, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?) RETURNING %s;`,
			userAttributes,
		)

		now := time.Now().UTC().Unix()

		err = sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
			Args: []any{subject, provider, subject, string(role), now, now},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				user = &User{}
				return errors.WithStack(s.bindUser(stmt, user))
			},
		})
		if err != nil {
			return errors.WithStack(err)
		}

		return nil
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return user, nil
}

// UpdateUserProfile saves the username, email and role of the user and marks
// it as connected.
func (s *Store) UpdateUserProfile(ctx context.Context, user *User) error {
	err := s.Tx(ctx, func(conn *sqlite.Conn) error {
		now := time.Now().UTC()

		err := sqlitex.Execute(conn, `UPDATE users SET username = ?, email = ?, role = ?, updated_at = ?, connected_at = ? WHERE id = ?`, &sqlitex.ExecOptions{
			Args: []any{user.Username, user.Email, string(user.Role), now.Unix(), now.Unix(), user.ID},
		})
		if err != nil {
			return errors.WithStack(err)
		}

		if conn.Changes() == 0 {
			return errors.Wrapf(ErrNotFound, "user '%d'", user.ID)
		}

		user.UpdatedAt = now
		user.ConnectedAt = now

		return nil
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return nil
}

func (s *Store) GetUser(ctx context.Context, userID int64) (*User, error) {
	var user *User
	err := s.Do(ctx, func(conn *sqlite.Conn) error {
		query := fmt.Sprintf("SELECT %s FROM users WHERE id = ? LIMIT 1", userAttributes)
		return sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
			Args: []any{userID},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				user = &User{}
				return errors.WithStack(s.bindUser(stmt, user))
			},
		})
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if user == nil {
		return nil, errors.Wrapf(ErrNotFound, "user '%d'", userID)
	}

	return user, nil
}

var userAttributes = `id, subject, provider, username, email, role, password_hash, created_at, updated_at, connected_at`

func (s *Store) bindUser(stmt *sqlite.Stmt, user *User) error {
	return s.bindUserAt(stmt, user, 0)
}

// bindUserAt binds the user attributes starting at the given column offset.
func (s *Store) bindUserAt(stmt *sqlite.Stmt, user *User, offset int) error {
	user.ID = stmt.ColumnInt64(offset)
	user.Subject = stmt.ColumnText(offset + 1)
	user.Provider = stmt.ColumnText(offset + 2)
	user.Username = stmt.ColumnText(offset + 3)
	user.Email = stmt.ColumnText(offset + 4)
	user.Role = nav.Role(stmt.ColumnText(offset + 5))
	user.PasswordHash = stmt.ColumnText(offset + 6)
	user.CreatedAt = time.Unix(stmt.ColumnInt64(offset+7), 0)
	user.UpdatedAt = time.Unix(stmt.ColumnInt64(offset+8), 0)
	user.ConnectedAt = time.Unix(stmt.ColumnInt64(offset+9), 0)

	return nil
}

func prefixed(table string, attributes string) string {
	columns := strings.Split(attributes, ",")
	for idx, c := range columns {
		columns[idx] = table + "." + strings.TrimSpace(c)
	}

	return strings.Join(columns, ", ")
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", errors.WithStack(err)
	}

	return string(hash), nil
}

func verifyPassword(password string, hash string) bool {
	if hash == "" {
		return false
	}

	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func (s *Store) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	err := s.Do(ctx, func(conn *sqlite.Conn) error {
		return sqlitex.Execute(conn, `SELECT COUNT(*) FROM users`, &sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				count = stmt.ColumnInt64(0)
				return nil
			},
		})
	})
	if err != nil {
		return 0, errors.WithStack(err)
	}

	return count, nil
}

func (s *Store) ListUsers(ctx context.Context) ([]*User, error) {
	users := make([]*User, 0)
	err := s.Do(ctx, func(conn *sqlite.Conn) error {
		query := fmt.Sprintf("SELECT %s FROM users ORDER BY id", userAttributes)
		return sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				user := &User{}
				if err := s.bindUser(stmt, user); err != nil {
					return errors.WithStack(err)
				}

				users = append(users, user)

				return nil
			},
		})
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return users, nil
}

func (s *Store) UpdateUserRole(ctx context.Context, userID int64, role nav.Role) error {
	if !role.Valid() {
		return errors.Errorf("invalid role '%s'", role)
	}

	err := s.Tx(ctx, func(conn *sqlite.Conn) error {
		err := sqlitex.Execute(conn, `UPDATE users SET role = ?, updated_at = ? WHERE id = ?`, &sqlitex.ExecOptions{
			Args: []any{string(role), time.Now().UTC().Unix(), userID},
		})
		if err != nil {
			return errors.WithStack(err)
		}

		if conn.Changes() == 0 {
			return errors.Wrapf(ErrNotFound, "user '%d'", userID)
		}

		return nil
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return nil
}
