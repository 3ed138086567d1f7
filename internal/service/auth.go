package service

import (
	"context"

	"github.com/Skotchmaster/vogue_nest/internal/logging"
	"github.com/Skotchmaster/vogue_nest/internal/models"
	"github.com/Skotchmaster/vogue_nest/internal/mykafka"
	"github.com/Skotchmaster/vogue_nest/internal/repo"
)

// MsgInvalidCredentials is shown to the user on a failed login.
const MsgInvalidCredentials = "Sai email hoặc mật khẩu"

type State int

const (
	StateAnonymous State = iota
	StateAuthenticated
)

func (s State) String() string {
	if s == StateAuthenticated {
		return "authenticated"
	}
	return "anonymous"
}

type LoginResult struct {
	Success bool   `json:"success"`
	Role    string `json:"role,omitempty"`
	Message string `json:"message,omitempty"`
}

// AuthService holds the one session of this process. The signed-in user is
// mirrored under repo.KeyCurrentUser so it survives a restart.
type AuthService struct {
	Store     *repo.Store
	Publisher mykafka.Publisher

	current  *models.User
	onLogout []func(ctx context.Context)
}

func NewAuthService(store *repo.Store, pub mykafka.Publisher) *AuthService {
	return &AuthService{Store: store, Publisher: pub}
}

// Restore reloads the persisted session. Missing or malformed data leaves
// the session anonymous.
func (s *AuthService) Restore(ctx context.Context) error {
	u, ok, err := repo.ReadValue[models.User](ctx, s.Store, repo.KeyCurrentUser)
	if err != nil {
		return err
	}
	if !ok {
		s.current = nil
		return nil
	}
	s.current = &u
	logging.FromContext(ctx).Debug("session_restored", "user_id", u.ID)
	return nil
}

func (s *AuthService) State() State {
	if s.current == nil {
		return StateAnonymous
	}
	return StateAuthenticated
}

func (s *AuthService) CurrentUser() (models.User, bool) {
	if s.current == nil {
		return models.User{}, false
	}
	return *s.current, true
}

// OnLogout registers fn to run after every logout.
func (s *AuthService) OnLogout(fn func(ctx context.Context)) {
	s.onLogout = append(s.onLogout, fn)
}

// Login matches email and password exactly against the user collection.
// A mismatch is not an error: it is reported through LoginResult.
func (s *AuthService) Login(ctx context.Context, email, password string) (LoginResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login")

	users, err := s.Store.Users().All(ctx)
	if err != nil {
		l.Error("login_error", "error", err)
		return LoginResult{}, err
	}

	idx := -1
	for i := range users {
		if users[i].Email == email && users[i].Password == password {
			idx = i
			break
		}
	}
	if idx == -1 {
		l.Warn("login_failed", "reason", "invalid email or password")
		return LoginResult{Success: false, Message: MsgInvalidCredentials}, nil
	}

	user := users[idx]
	if err := s.setCurrent(ctx, user); err != nil {
		l.Error("login_error", "error", err)
		return LoginResult{}, err
	}

	l.Info("login_ok", "user_id", user.ID, "role", user.Role)
	publish(ctx, s.Publisher, mykafka.TopicUserEvents, user.ID, map[string]any{
		"type":   "user_logged_in",
		"userID": user.ID,
		"role":   user.Role,
	})
	return LoginResult{Success: true, Role: user.Role}, nil
}

// Register refuses only when a user has both the same email and the same
// userName. The new user gets the id of the last stored user plus one and
// is signed in.
func (s *AuthService) Register(ctx context.Context, email, password, userName string) (bool, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	users, err := s.Store.Users().All(ctx)
	if err != nil {
		l.Error("register_error", "error", err)
		return false, err
	}

	for _, u := range users {
		if u.Email == email && u.UserName == userName {
			l.Warn("register_failed", "reason", "user already exists")
			return false, nil
		}
	}

	user := models.User{
		ID:       repo.LastID[models.User](users) + 1,
		Email:    email,
		Password: password,
		UserName: userName,
		Role:     models.RoleUser,
	}
	if err := s.Store.Users().Replace(ctx, append(users, user)); err != nil {
		l.Error("register_error", "error", err)
		return false, err
	}
	if err := s.setCurrent(ctx, user); err != nil {
		l.Error("register_error", "error", err)
		return false, err
	}

	l.Info("register_ok", "user_id", user.ID)
	publish(ctx, s.Publisher, mykafka.TopicUserEvents, user.ID, map[string]any{
		"type":   "user_registered",
		"userID": user.ID,
	})
	return true, nil
}

func (s *AuthService) Logout(ctx context.Context) error {
	l := logging.FromContext(ctx).With("svc", "auth.logout")

	if err := s.Store.Delete(ctx, repo.KeyCurrentUser); err != nil {
		l.Error("logout_error", "error", err)
		return err
	}
	prev := s.current
	s.current = nil

	if prev != nil {
		l.Info("logout_ok", "user_id", prev.ID)
		publish(ctx, s.Publisher, mykafka.TopicUserEvents, prev.ID, map[string]any{
			"type":   "user_logged_out",
			"userID": prev.ID,
		})
	}
	for _, fn := range s.onLogout {
		fn(ctx)
	}
	return nil
}

// UpdateProfile edits the signed-in user both in the session and in the
// user collection.
func (s *AuthService) UpdateProfile(ctx context.Context, patch models.ProfileUpdate) (models.User, error) {
	if s.current == nil {
		return models.User{}, ErrNotAuthenticated
	}

	updated := *s.current
	patch.Apply(&updated)

	users, err := s.Store.Users().All(ctx)
	if err != nil {
		return models.User{}, err
	}
	for i := range users {
		if users[i].ID == updated.ID {
			users[i] = updated
		}
	}
	if err := s.Store.Users().Replace(ctx, users); err != nil {
		return models.User{}, err
	}
	if err := s.setCurrent(ctx, updated); err != nil {
		return models.User{}, err
	}

	logging.FromContext(ctx).Info("profile_updated", "user_id", updated.ID)
	return updated, nil
}

// SyncUser refreshes the session copy when u is the signed-in user, so edits
// made outside UpdateProfile show up in CurrentUser.
func (s *AuthService) SyncUser(ctx context.Context, u models.User) error {
	if s.current == nil || s.current.ID != u.ID {
		return nil
	}
	return s.setCurrent(ctx, u)
}

// UserRemoved logs out the session when it belongs to the removed user.
func (s *AuthService) UserRemoved(ctx context.Context, id int) error {
	if s.current == nil || s.current.ID != id {
		return nil
	}
	return s.Logout(ctx)
}

// Close drops the in-memory session and its listeners. Persisted data is kept.
func (s *AuthService) Close() {
	s.current = nil
	s.onLogout = nil
}

func (s *AuthService) setCurrent(ctx context.Context, u models.User) error {
	if err := repo.WriteValue(ctx, s.Store, repo.KeyCurrentUser, u); err != nil {
		return err
	}
	s.current = &u
	return nil
}
