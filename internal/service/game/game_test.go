package game

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"testing"
	"time"

	"slots_backend/internal/config"
	"slots_backend/internal/model"
	"slots_backend/internal/service"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
)

// fakeTxManager - прозрачный менеджер транзакций для тестов
type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (fakeTxManager) DoWithSettings(ctx context.Context, _ trm.Settings, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// fakeSessionRepo - in-memory реализация хранилища игровых сессий
type fakeSessionRepo struct {
	seq      int
	sessions map[string]*model.GameSession
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]*model.GameSession)}
}

func (r *fakeSessionRepo) Create(_ context.Context, ownerID int, credits int) (*model.GameSession, error) {
	r.seq++
	sess := &model.GameSession{
		ID:        "sess-" + strconv.Itoa(r.seq),
		OwnerID:   ownerID,
		Credits:   credits,
		IsActive:  true,
		UpdatedAt: time.Now(),
	}
	r.sessions[sess.ID] = sess
	return copySession(sess), nil
}

func (r *fakeSessionRepo) Get(_ context.Context, id string) (*model.GameSession, error) {
	sess, ok := r.sessions[id]
	if !ok {
		return nil, model.ErrSessionNotFound
	}
	return copySession(sess), nil
}

func (r *fakeSessionRepo) Update(_ context.Context, id string, credits int, lastRoll [3]model.Symbol, rollCount int) error {
	sess, ok := r.sessions[id]
	if !ok {
		return model.ErrSessionNotFound
	}
	sess.Credits = credits
	sess.LastRoll = lastRoll[:]
	sess.RollCount = rollCount
	sess.UpdatedAt = time.Now()
	return nil
}

func (r *fakeSessionRepo) Deactivate(_ context.Context, id string) error {
	sess, ok := r.sessions[id]
	if !ok || !sess.IsActive {
		return model.ErrSessionNotFound
	}
	sess.IsActive = false
	return nil
}

func (r *fakeSessionRepo) FindActiveByOwner(_ context.Context, ownerID int) (*model.GameSession, error) {
	var found []*model.GameSession
	for _, sess := range r.sessions {
		if sess.OwnerID == ownerID && sess.IsActive {
			found = append(found, sess)
		}
	}
	if len(found) == 0 {
		return nil, model.ErrSessionNotFound
	}
	sort.Slice(found, func(i, j int) bool {
		return found[i].UpdatedAt.After(found[j].UpdatedAt)
	})
	return copySession(found[0]), nil
}

func (r *fakeSessionRepo) TransferOwner(_ context.Context, id string, fromOwnerID, toOwnerID int) (bool, error) {
	sess, ok := r.sessions[id]
	if !ok || !sess.IsActive || sess.OwnerID != fromOwnerID {
		return false, nil
	}
	sess.OwnerID = toOwnerID
	sess.UpdatedAt = time.Now()
	return true, nil
}

func copySession(sess *model.GameSession) *model.GameSession {
	cp := *sess
	return &cp
}

// fakeUserRepo - in-memory реализация хранилища пользователей
type fakeUserRepo struct {
	seq   int
	users map[int]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int]*model.User)}
}

func (r *fakeUserRepo) CreateUser(_ context.Context, user *model.User) (int, error) {
	r.seq++
	cp := *user
	cp.ID = r.seq
	r.users[cp.ID] = &cp
	return cp.ID, nil
}

func (r *fakeUserRepo) GetUserByLogin(_ context.Context, login string) (*model.User, error) {
	for _, u := range r.users {
		if u.Login == login {
			cp := *u
			return &cp, nil
		}
	}
	return nil, model.ErrUserNotFound
}

func (r *fakeUserRepo) GetUserByID(_ context.Context, id int) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetBalance(_ context.Context, id int) (int, error) {
	u, ok := r.users[id]
	if !ok {
		return 0, model.ErrUserNotFound
	}
	return u.Balance, nil
}

func (r *fakeUserRepo) SetBalance(_ context.Context, id int, amount int) error {
	u, ok := r.users[id]
	if !ok {
		return model.ErrUserNotFound
	}
	u.Balance = amount
	return nil
}

func (r *fakeUserRepo) AddToBalance(_ context.Context, id int, delta int) (int, error) {
	u, ok := r.users[id]
	if !ok {
		return 0, model.ErrUserNotFound
	}
	u.Balance += delta
	return u.Balance, nil
}

func (r *fakeUserRepo) EnsureGuest(_ context.Context) error {
	if _, ok := r.users[model.GuestUserID]; !ok {
		r.users[model.GuestUserID] = &model.User{ID: model.GuestUserID, Name: "Guest Player", Login: "guest"}
	}
	return nil
}

// fakeGameConfig - игровые настройки как в боевом config.yaml
type fakeGameConfig struct{}

func (fakeGameConfig) StartingCredits() int { return 10 }
func (fakeGameConfig) RollCost() int        { return 1 }
func (fakeGameConfig) RequiredRolls() int   { return 2 }
func (fakeGameConfig) BiasTiers() []config.BiasTier {
	return testTiers()
}

type testEnv struct {
	sessions *fakeSessionRepo
	users    *fakeUserRepo
	serv     service.GameService
	src      *scriptedSource
}

func newTestEnv(t *testing.T, draws ...int64) *testEnv {
	sessions := newFakeSessionRepo()
	users := newFakeUserRepo()
	src := &scriptedSource{t: t, values: draws}
	roller := NewRoller(src, testTiers())

	return &testEnv{
		sessions: sessions,
		users:    users,
		serv:     NewGameService(fakeGameConfig{}, sessions, users, fakeTxManager{}, roller),
		src:      src,
	}
}

func (e *testEnv) addUser(t *testing.T, balance int) int {
	id, err := e.users.CreateUser(context.Background(), &model.User{
		Name:    "Player",
		Login:   "player" + strconv.Itoa(e.users.seq+1),
		Balance: balance,
	})
	if err != nil {
		t.Fatalf("addUser: %v", err)
	}
	return id
}

// Проигрышный бросок: cherry, lemon, orange
func lossDraws() []int64 {
	return []int64{symDraw(0), symDraw(1), symDraw(2)}
}

// Выигрышный бросок: три вишни (без докрутки при малых кредитах)
func winDraws() []int64 {
	return []int64{symDraw(0), symDraw(0), symDraw(0)}
}

func TestStart_GuestGetsStartingCredits(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	res, err := env.serv.Start(ctx, model.GuestUserID, "")
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	if res.Credits != 10 {
		t.Errorf("guest credits = %d, want 10", res.Credits)
	}
	if _, ok := env.users.users[model.GuestUserID]; !ok {
		t.Error("guest user was not ensured")
	}
}

func TestStart_GuestAlwaysGetsFreshSessionWithoutHint(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	first, err := env.serv.Start(ctx, model.GuestUserID, "")
	if err != nil {
		t.Fatalf("first Start: %v", err)
	}
	second, err := env.serv.Start(ctx, model.GuestUserID, "")
	if err != nil {
		t.Fatalf("second Start: %v", err)
	}

	if first.SessionID == second.SessionID {
		t.Error("guest without hint must get a new session")
	}
}

func TestStart_GuestResumesByHint(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	first, err := env.serv.Start(ctx, model.GuestUserID, "")
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	resumed, err := env.serv.Start(ctx, model.GuestUserID, first.SessionID)
	if err != nil {
		t.Fatalf("resume Start: %v", err)
	}
	if resumed.SessionID != first.SessionID || resumed.Credits != first.Credits {
		t.Errorf("resume = %+v, want same session %+v", resumed, first)
	}
}

func TestStart_RegisteredBalanceMovesIntoSession(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	userID := env.addUser(t, 50)

	res, err := env.serv.Start(ctx, userID, "")
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	if res.Credits != 50 {
		t.Errorf("session credits = %d, want 50", res.Credits)
	}

	balance, _ := env.users.GetBalance(ctx, userID)
	if balance != 0 {
		t.Errorf("ledger balance after start = %d, want 0", balance)
	}
}

func TestStart_RegisteredZeroBalanceGetsSeed(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	userID := env.addUser(t, 0)

	res, err := env.serv.Start(ctx, userID, "")
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	if res.Credits != 10 {
		t.Errorf("session credits = %d, want seed 10", res.Credits)
	}

	balance, _ := env.users.GetBalance(ctx, userID)
	if balance != 0 {
		t.Errorf("ledger balance after start = %d, want 0", balance)
	}
}

func TestStart_RegisteredReusesActiveSession(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	userID := env.addUser(t, 25)

	first, err := env.serv.Start(ctx, userID, "")
	if err != nil {
		t.Fatalf("first Start: %v", err)
	}

	second, err := env.serv.Start(ctx, userID, "")
	if err != nil {
		t.Fatalf("second Start: %v", err)
	}

	if second.SessionID != first.SessionID {
		t.Error("registered user must resume the active session")
	}
	if second.Credits != first.Credits {
		t.Errorf("resumed credits = %d, want %d", second.Credits, first.Credits)
	}
}

func TestStart_UnknownOwnerFails(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.serv.Start(context.Background(), 777, "")
	if !errors.Is(err, model.ErrUserNotFound) {
		t.Errorf("err = %v, want ErrUserNotFound", err)
	}
}

func TestStart_ForeignHintIgnored(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.addUser(t, 30)
	bob := env.addUser(t, 20)

	aliceSession, err := env.serv.Start(ctx, alice, "")
	if err != nil {
		t.Fatalf("alice Start: %v", err)
	}

	res, err := env.serv.Start(ctx, bob, aliceSession.SessionID)
	if err != nil {
		t.Fatalf("bob Start: %v", err)
	}

	if res.SessionID == aliceSession.SessionID {
		t.Error("hint naming a foreign session must not be honored")
	}
	if res.Credits != 20 {
		t.Errorf("bob credits = %d, want 20", res.Credits)
	}
}

func TestRoll_LossDebitsCost(t *testing.T) {
	env := newTestEnv(t, lossDraws()...)
	ctx := context.Background()

	start, err := env.serv.Start(ctx, model.GuestUserID, "")
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	res, err := env.serv.Roll(ctx, start.SessionID)
	if err != nil {
		t.Fatalf("Roll: %v", err)
	}

	if res.Win {
		t.Error("mixed symbols must not win")
	}
	if res.Credits != 9 {
		t.Errorf("credits = %d, want 9", res.Credits)
	}

	sess, _ := env.sessions.Get(ctx, start.SessionID)
	if sess.RollCount != 1 {
		t.Errorf("roll count = %d, want 1", sess.RollCount)
	}
	if len(sess.LastRoll) != 3 {
		t.Errorf("last roll not persisted: %v", sess.LastRoll)
	}
}

func TestRoll_WinCreditsPayout(t *testing.T) {
	env := newTestEnv(t, winDraws()...)
	ctx := context.Background()

	start, err := env.serv.Start(ctx, model.GuestUserID, "")
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	res, err := env.serv.Roll(ctx, start.SessionID)
	if err != nil {
		t.Fatalf("Roll: %v", err)
	}

	if !res.Win || res.WinAmount != 10 {
		t.Errorf("win = %v amount = %d, want three cherries paying 10", res.Win, res.WinAmount)
	}
	// 10 - 1 + 10
	if res.Credits != 19 {
		t.Errorf("credits = %d, want 19", res.Credits)
	}
}

func TestRoll_InsufficientCredits(t *testing.T) {
	// 10 проигрышных бросков сжигают весь стартовый стек
	var draws []int64
	for i := 0; i < 10; i++ {
		draws = append(draws, lossDraws()...)
	}
	env := newTestEnv(t, draws...)
	ctx := context.Background()

	start, err := env.serv.Start(ctx, model.GuestUserID, "")
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	for i := 0; i < 10; i++ {
		res, err := env.serv.Roll(ctx, start.SessionID)
		if err != nil {
			t.Fatalf("roll %d: %v", i, err)
		}
		if res.Credits < 0 {
			t.Fatalf("roll %d: credits went negative: %d", i, res.Credits)
		}
	}

	_, err = env.serv.Roll(ctx, start.SessionID)
	if !errors.Is(err, model.ErrInsufficientCredits) {
		t.Errorf("err = %v, want ErrInsufficientCredits", err)
	}
}

func TestRoll_UnknownSession(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.serv.Roll(context.Background(), "no-such-session")
	if !errors.Is(err, model.ErrSessionNotFound) {
		t.Errorf("err = %v, want ErrSessionNotFound", err)
	}
}

func TestRoll_ClosedSession(t *testing.T) {
	env := newTestEnv(t, append(append(lossDraws(), lossDraws()...), lossDraws()...)...)
	ctx := context.Background()
	userID := env.addUser(t, 20)

	start, err := env.serv.Start(ctx, userID, "")
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	for i := 0; i < 2; i++ {
		if _, err := env.serv.Roll(ctx, start.SessionID); err != nil {
			t.Fatalf("roll %d: %v", i, err)
		}
	}
	if _, err := env.serv.Cashout(ctx, start.SessionID, userID); err != nil {
		t.Fatalf("Cashout: %v", err)
	}

	_, err = env.serv.Roll(ctx, start.SessionID)
	if !errors.Is(err, model.ErrSessionNotFound) {
		t.Errorf("roll on closed session: err = %v, want ErrSessionNotFound", err)
	}
}

func TestCashout_GuestForbidden(t *testing.T) {
	env := newTestEnv(t, append(lossDraws(), lossDraws()...)...)
	ctx := context.Background()

	start, err := env.serv.Start(ctx, model.GuestUserID, "")
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	for i := 0; i < 2; i++ {
		if _, err := env.serv.Roll(ctx, start.SessionID); err != nil {
			t.Fatalf("roll %d: %v", i, err)
		}
	}

	_, err = env.serv.Cashout(ctx, start.SessionID, 0)
	if !errors.Is(err, model.ErrGuestCashout) {
		t.Errorf("err = %v, want ErrGuestCashout", err)
	}
}

func TestCashout_OwnerMismatch(t *testing.T) {
	env := newTestEnv(t, append(lossDraws(), lossDraws()...)...)
	ctx := context.Background()
	alice := env.addUser(t, 20)
	bob := env.addUser(t, 20)

	start, err := env.serv.Start(ctx, alice, "")
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	for i := 0; i < 2; i++ {
		if _, err := env.serv.Roll(ctx, start.SessionID); err != nil {
			t.Fatalf("roll %d: %v", i, err)
		}
	}

	_, err = env.serv.Cashout(ctx, start.SessionID, bob)
	if !errors.Is(err, model.ErrOwnerMismatch) {
		t.Errorf("err = %v, want ErrOwnerMismatch", err)
	}
}

func TestCashout_RequiresTwoRolls(t *testing.T) {
	env := newTestEnv(t, append(lossDraws(), lossDraws()...)...)
	ctx := context.Background()
	userID := env.addUser(t, 20)

	start, err := env.serv.Start(ctx, userID, "")
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	// До бросков и после одного — отказ
	if _, err := env.serv.Cashout(ctx, start.SessionID, userID); !errors.Is(err, model.ErrInsufficientRolls) {
		t.Errorf("0 rolls: err = %v, want ErrInsufficientRolls", err)
	}
	if _, err := env.serv.Roll(ctx, start.SessionID); err != nil {
		t.Fatalf("roll: %v", err)
	}
	if _, err := env.serv.Cashout(ctx, start.SessionID, userID); !errors.Is(err, model.ErrInsufficientRolls) {
		t.Errorf("1 roll: err = %v, want ErrInsufficientRolls", err)
	}

	// После второго броска вывод проходит
	if _, err := env.serv.Roll(ctx, start.SessionID); err != nil {
		t.Fatalf("roll: %v", err)
	}
	if _, err := env.serv.Cashout(ctx, start.SessionID, userID); err != nil {
		t.Errorf("2 rolls: Cashout failed: %v", err)
	}
}

func TestCashout_ConservationAndIdempotency(t *testing.T) {
	env := newTestEnv(t, append(lossDraws(), lossDraws()...)...)
	ctx := context.Background()
	userID := env.addUser(t, 20)

	start, err := env.serv.Start(ctx, userID, "")
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	for i := 0; i < 2; i++ {
		if _, err := env.serv.Roll(ctx, start.SessionID); err != nil {
			t.Fatalf("roll %d: %v", i, err)
		}
	}

	sessBefore, _ := env.sessions.Get(ctx, start.SessionID)
	balanceBefore, _ := env.users.GetBalance(ctx, userID)

	res, err := env.serv.Cashout(ctx, start.SessionID, userID)
	if err != nil {
		t.Fatalf("Cashout: %v", err)
	}

	if res.CreditsOut != sessBefore.Credits {
		t.Errorf("credits out = %d, want %d", res.CreditsOut, sessBefore.Credits)
	}

	// Закон сохранения: дельта баланса равна кредитам сессии на закрытии
	balanceAfter, _ := env.users.GetBalance(ctx, userID)
	if balanceAfter-balanceBefore != sessBefore.Credits {
		t.Errorf("balance delta = %d, want %d", balanceAfter-balanceBefore, sessBefore.Credits)
	}

	// Запись сессии закрыта, но кредиты в ней остаются как след для аудита
	sessAfter, _ := env.sessions.Get(ctx, start.SessionID)
	if sessAfter.IsActive {
		t.Error("session must be inactive after cashout")
	}
	if sessAfter.Credits != sessBefore.Credits {
		t.Errorf("audit credits = %d, want %d", sessAfter.Credits, sessBefore.Credits)
	}

	// Повторный вывод той же сессии — not found, баланс не двигается
	_, err = env.serv.Cashout(ctx, start.SessionID, userID)
	if !errors.Is(err, model.ErrSessionNotFound) {
		t.Errorf("second cashout: err = %v, want ErrSessionNotFound", err)
	}
	balanceFinal, _ := env.users.GetBalance(ctx, userID)
	if balanceFinal != balanceAfter {
		t.Errorf("second cashout moved balance: %d -> %d", balanceAfter, balanceFinal)
	}
}

func TestProfile(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	userID := env.addUser(t, 40)

	profile, err := env.serv.Profile(ctx, userID)
	if err != nil {
		t.Fatalf("Profile: %v", err)
	}
	if profile.Credits != 40 || profile.SessionID != "" {
		t.Errorf("profile = %+v, want balance 40 and no session", profile)
	}

	start, err := env.serv.Start(ctx, userID, "")
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	profile, err = env.serv.Profile(ctx, userID)
	if err != nil {
		t.Fatalf("Profile: %v", err)
	}
	if profile.SessionID != start.SessionID || profile.SessionCredits != start.Credits {
		t.Errorf("profile = %+v, want active session %+v", profile, start)
	}
	if profile.Credits != 0 {
		t.Errorf("ledger in profile = %d, want 0 after start", profile.Credits)
	}

	_, err = env.serv.Profile(ctx, 999)
	if !errors.Is(err, model.ErrUserNotFound) {
		t.Errorf("unknown user: err = %v, want ErrUserNotFound", err)
	}
}

// Золотое правило экономики: ценность либо в сессии, либо на балансе
func TestEconomy_NoDoubleCounting(t *testing.T) {
	env := newTestEnv(t, append(append(lossDraws(), winDraws()...), lossDraws()...)...)
	ctx := context.Background()
	userID := env.addUser(t, 30)

	start, err := env.serv.Start(ctx, userID, "")
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	// После старта весь пул ушел в сессию
	balance, _ := env.users.GetBalance(ctx, userID)
	if balance != 0 {
		t.Fatalf("ledger = %d while session holds the pool", balance)
	}

	var last *model.RollResult
	for i := 0; i < 3; i++ {
		last, err = env.serv.Roll(ctx, start.SessionID)
		if err != nil {
			t.Fatalf("roll %d: %v", i, err)
		}
	}

	res, err := env.serv.Cashout(ctx, start.SessionID, userID)
	if err != nil {
		t.Fatalf("Cashout: %v", err)
	}
	if res.CreditsOut != last.Credits {
		t.Errorf("cashed out %d, session held %d", res.CreditsOut, last.Credits)
	}

	balance, _ = env.users.GetBalance(ctx, userID)
	if balance != last.Credits {
		t.Errorf("ledger = %d, want %d", balance, last.Credits)
	}
}
