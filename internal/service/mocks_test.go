package service

import (
	"context"
	"fmt"
	"time"

	"github.com/planejacasar/wedding-backend/internal/domain"
)

// In-memory fakes for the repository interfaces. They cut the same corners
// the SQL layer does not (no timeouts, no constraints beyond uniqueness).

type memUserRepo struct {
	users map[string]*domain.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[string]*domain.User{}}
}

func (r *memUserRepo) add(id, name, email string) *domain.User {
	u := &domain.User{ID: id, Name: name, Email: email, CreatedAt: time.Now(), UpdatedAt: time.Now()}
	r.users[id] = u
	return u
}

func (r *memUserRepo) Create(_ context.Context, name, email, passwordHash string, phone *string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return nil, domain.ErrEmailExists
		}
	}
	id := fmt.Sprintf("user-%d", len(r.users)+1)
	u := &domain.User{
		ID: id, Name: name, Email: email, PasswordHash: passwordHash, Phone: phone,
		CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}
	r.users[id] = u
	return u, nil
}

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	return r.users[id], nil
}

type memEventRepo struct {
	events  map[string]*domain.Event
	members map[string]*domain.EventMember
	nextID  int
}

func newMemEventRepo() *memEventRepo {
	return &memEventRepo{
		events:  map[string]*domain.Event{},
		members: map[string]*domain.EventMember{},
	}
}

func (r *memEventRepo) memberKey(eventID, userID string) string {
	return eventID + "|" + userID
}

func (r *memEventRepo) addEvent(id, ownerID string, date time.Time, budget *float64) *domain.Event {
	e := &domain.Event{
		ID: id, EventType: "wedding", Date: date, Budget: budget,
		Status: domain.EventInProgress, InviteCode: "code-" + id, OwnerID: ownerID,
		CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}
	r.events[id] = e
	return e
}

func (r *memEventRepo) addMember(eventID, userID string, role domain.MemberRole) {
	r.members[r.memberKey(eventID, userID)] = &domain.EventMember{
		ID: fmt.Sprintf("m-%d", len(r.members)+1), EventID: eventID, UserID: userID,
		Role: role, CreatedAt: time.Now(),
	}
}

func (r *memEventRepo) Create(_ context.Context, ownerID, inviteCode string, req *domain.CreateEventRequest) (*domain.Event, error) {
	r.nextID++
	id := fmt.Sprintf("event-%d", r.nextID)
	e := &domain.Event{
		ID: id, EventType: req.EventType, Date: req.Date, Venue: req.Venue,
		Budget: req.Budget, Status: domain.EventInProgress, InviteCode: inviteCode,
		OwnerID: ownerID, CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}
	r.events[id] = e
	r.addMember(id, ownerID, domain.RoleOwner)
	return e, nil
}

func (r *memEventRepo) GetByID(_ context.Context, id string) (*domain.Event, error) {
	return r.events[id], nil
}

func (r *memEventRepo) GetByInviteCode(_ context.Context, code string) (*domain.Event, error) {
	for _, e := range r.events {
		if e.InviteCode == code {
			return e, nil
		}
	}
	return nil, nil
}

func (r *memEventRepo) ListByUser(_ context.Context, userID string) ([]domain.Event, []domain.MemberRole, error) {
	var events []domain.Event
	var roles []domain.MemberRole
	for _, m := range r.members {
		if m.UserID != userID {
			continue
		}
		if e, ok := r.events[m.EventID]; ok {
			events = append(events, *e)
			roles = append(roles, m.Role)
		}
	}
	return events, roles, nil
}

func (r *memEventRepo) Update(_ context.Context, id string, patch domain.EventPatch) (*domain.Event, error) {
	e, ok := r.events[id]
	if !ok {
		return nil, nil
	}
	if patch.EventType != nil {
		e.EventType = *patch.EventType
	}
	if patch.Date != nil {
		e.Date = *patch.Date
	}
	if patch.Venue != nil {
		e.Venue = patch.Venue
	}
	if patch.Status != nil {
		e.Status = *patch.Status
	}
	if patch.Budget != nil {
		e.Budget = patch.Budget
	}
	e.UpdatedAt = time.Now()
	return e, nil
}

func (r *memEventRepo) Delete(_ context.Context, id string) (bool, error) {
	if _, ok := r.events[id]; !ok {
		return false, nil
	}
	delete(r.events, id)
	return true, nil
}

func (r *memEventRepo) UpdateProgress(_ context.Context, id string, progress int) error {
	if e, ok := r.events[id]; ok {
		e.OverallProgress = progress
	}
	return nil
}

func (r *memEventRepo) GetMember(_ context.Context, eventID, userID string) (*domain.EventMember, error) {
	return r.members[r.memberKey(eventID, userID)], nil
}

func (r *memEventRepo) CreateMember(_ context.Context, eventID, userID string, role domain.MemberRole) (*domain.EventMember, error) {
	key := r.memberKey(eventID, userID)
	if _, ok := r.members[key]; ok {
		return nil, domain.ErrAlreadyMember
	}
	r.addMember(eventID, userID, role)
	return r.members[key], nil
}

func (r *memEventRepo) ListMembers(_ context.Context, eventID string) ([]domain.MemberInfo, error) {
	var members []domain.MemberInfo
	for _, m := range r.members {
		if m.EventID == eventID {
			members = append(members, domain.MemberInfo{
				User:     domain.Profile{ID: m.UserID},
				Role:     m.Role,
				JoinedAt: m.CreatedAt,
			})
		}
	}
	return members, nil
}

type memGuestRepo struct {
	guests map[string]*domain.Guest
	nextID int
}

func newMemGuestRepo() *memGuestRepo {
	return &memGuestRepo{guests: map[string]*domain.Guest{}}
}

func (r *memGuestRepo) add(eventID string, status domain.GuestStatus) *domain.Guest {
	r.nextID++
	g := &domain.Guest{
		ID: fmt.Sprintf("guest-%d", r.nextID), EventID: eventID, Name: "Guest",
		Type: domain.GuestAdult, Side: domain.SideFriends, Status: status,
		CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}
	r.guests[g.ID] = g
	return g
}

func (r *memGuestRepo) Create(_ context.Context, req *domain.CreateGuestRequest) (*domain.Guest, error) {
	r.nextID++
	g := &domain.Guest{
		ID: fmt.Sprintf("guest-%d", r.nextID), EventID: req.EventID, Name: req.Name,
		Email: req.Email, Phone: req.Phone, Type: req.Type, Side: req.Side,
		Status: req.Status, TableNumber: req.TableNumber,
		DietaryNotes: req.DietaryNotes, Notes: req.Notes,
		CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}
	r.guests[g.ID] = g
	return g, nil
}

func (r *memGuestRepo) GetByID(_ context.Context, id string) (*domain.Guest, error) {
	return r.guests[id], nil
}

func (r *memGuestRepo) ListByEvent(_ context.Context, eventID string, filters domain.GuestFilters) ([]domain.Guest, error) {
	var guests []domain.Guest
	for _, g := range r.guests {
		if g.EventID != eventID {
			continue
		}
		if filters.Status != nil && g.Status != *filters.Status {
			continue
		}
		guests = append(guests, *g)
	}
	return guests, nil
}

func (r *memGuestRepo) Update(_ context.Context, id string, patch domain.GuestPatch) (*domain.Guest, error) {
	g, ok := r.guests[id]
	if !ok {
		return nil, nil
	}
	if patch.Name != nil {
		g.Name = *patch.Name
	}
	if patch.Status != nil {
		g.Status = *patch.Status
	}
	g.UpdatedAt = time.Now()
	return g, nil
}

func (r *memGuestRepo) Delete(_ context.Context, id string) (bool, error) {
	if _, ok := r.guests[id]; !ok {
		return false, nil
	}
	delete(r.guests, id)
	return true, nil
}

func (r *memGuestRepo) CountByEvent(_ context.Context, eventID string) (int, error) {
	n := 0
	for _, g := range r.guests {
		if g.EventID == eventID {
			n++
		}
	}
	return n, nil
}

func (r *memGuestRepo) CountByEventAndStatus(_ context.Context, eventID string, status domain.GuestStatus) (int, error) {
	n := 0
	for _, g := range r.guests {
		if g.EventID == eventID && g.Status == status {
			n++
		}
	}
	return n, nil
}

type memChecklistRepo struct {
	tasks  map[string]*domain.ChecklistTask
	ids    []string // insertion order, like the repo's ORDER BY
	nextID int
}

func newMemChecklistRepo() *memChecklistRepo {
	return &memChecklistRepo{tasks: map[string]*domain.ChecklistTask{}}
}

func (r *memChecklistRepo) add(eventID string, category domain.TaskCategory, status domain.TaskStatus, dueDate *time.Time) *domain.ChecklistTask {
	r.nextID++
	t := &domain.ChecklistTask{
		ID: fmt.Sprintf("task-%d", r.nextID), EventID: eventID, Title: "Task",
		Category: category, Priority: domain.PriorityMedium, Status: status,
		DueDate: dueDate, CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}
	r.tasks[t.ID] = t
	r.ids = append(r.ids, t.ID)
	return t
}

func (r *memChecklistRepo) Create(_ context.Context, req *domain.CreateChecklistTaskRequest) (*domain.ChecklistTask, error) {
	r.nextID++
	t := &domain.ChecklistTask{
		ID: fmt.Sprintf("task-%d", r.nextID), EventID: req.EventID, Title: req.Title,
		Description: req.Description, Category: req.Category, Priority: req.Priority,
		Status: domain.TaskPending, DueDate: req.DueDate,
		CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}
	r.tasks[t.ID] = t
	r.ids = append(r.ids, t.ID)
	return t, nil
}

// GetByID returns a copy, the way a fresh row scan would.
func (r *memChecklistRepo) GetByID(_ context.Context, id string) (*domain.ChecklistTask, error) {
	t, ok := r.tasks[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (r *memChecklistRepo) ListByEvent(_ context.Context, eventID string, filters domain.ChecklistFilters) ([]domain.ChecklistTask, error) {
	var tasks []domain.ChecklistTask
	for _, id := range r.ids {
		t, ok := r.tasks[id]
		if !ok || t.EventID != eventID {
			continue
		}
		if filters.Status != nil && t.Status != *filters.Status {
			continue
		}
		tasks = append(tasks, *t)
	}
	return tasks, nil
}

func (r *memChecklistRepo) Update(_ context.Context, id string, patch domain.ChecklistTaskPatch) (*domain.ChecklistTask, error) {
	t, ok := r.tasks[id]
	if !ok {
		return nil, nil
	}
	if patch.Title != nil {
		t.Title = *patch.Title
	}
	if patch.Status != nil {
		t.Status = *patch.Status
	}
	t.UpdatedAt = time.Now()
	cp := *t
	return &cp, nil
}

func (r *memChecklistRepo) SetStatus(_ context.Context, id string, status domain.TaskStatus) (*domain.ChecklistTask, error) {
	t, ok := r.tasks[id]
	if !ok {
		return nil, nil
	}
	t.Status = status
	t.UpdatedAt = time.Now()
	cp := *t
	return &cp, nil
}

func (r *memChecklistRepo) Delete(_ context.Context, id string) (bool, error) {
	if _, ok := r.tasks[id]; !ok {
		return false, nil
	}
	delete(r.tasks, id)
	return true, nil
}

func (r *memChecklistRepo) CountByEventAndStatus(_ context.Context, eventID string, status domain.TaskStatus) (int, error) {
	n := 0
	for _, t := range r.tasks {
		if t.EventID == eventID && t.Status == status {
			n++
		}
	}
	return n, nil
}

func (r *memChecklistRepo) ListUpcoming(_ context.Context, eventID string, limit int) ([]domain.UpcomingTask, error) {
	var tasks []domain.UpcomingTask
	for _, t := range r.tasks {
		if t.EventID != eventID || t.Status != domain.TaskPending || t.DueDate == nil {
			continue
		}
		tasks = append(tasks, domain.UpcomingTask{
			ID: t.ID, Title: t.Title, DueDate: *t.DueDate,
			Priority: t.Priority, Category: t.Category,
		})
	}
	for i := 0; i < len(tasks); i++ {
		for j := i + 1; j < len(tasks); j++ {
			if tasks[j].DueDate.Before(tasks[i].DueDate) {
				tasks[i], tasks[j] = tasks[j], tasks[i]
			}
		}
	}
	if len(tasks) > limit {
		tasks = tasks[:limit]
	}
	return tasks, nil
}

type memBudgetRepo struct {
	budgets map[string]*domain.Budget
	ids     []string // insertion order, like the repo's ORDER BY
	nextID  int
}

func newMemBudgetRepo() *memBudgetRepo {
	return &memBudgetRepo{budgets: map[string]*domain.Budget{}}
}

func (r *memBudgetRepo) add(eventID string, category domain.SpendCategory, value float64, status domain.BudgetStatus) *domain.Budget {
	r.nextID++
	b := &domain.Budget{
		ID: fmt.Sprintf("budget-%d", r.nextID), EventID: eventID, VendorName: "Vendor",
		Category: category, Value: value, Status: status,
		CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}
	r.budgets[b.ID] = b
	r.ids = append(r.ids, b.ID)
	return b
}

func (r *memBudgetRepo) Create(_ context.Context, req *domain.CreateBudgetRequest) (*domain.Budget, error) {
	r.nextID++
	b := &domain.Budget{
		ID: fmt.Sprintf("budget-%d", r.nextID), EventID: req.EventID,
		VendorName: req.VendorName, Category: req.Category, Description: req.Description,
		Value: req.Value, Status: domain.BudgetPending, ValidUntil: req.ValidUntil,
		Notes: req.Notes, CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}
	r.budgets[b.ID] = b
	r.ids = append(r.ids, b.ID)
	return b, nil
}

func (r *memBudgetRepo) GetByID(_ context.Context, id string) (*domain.Budget, error) {
	b, ok := r.budgets[id]
	if !ok {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (r *memBudgetRepo) ListByEvent(_ context.Context, eventID string, filters domain.BudgetFilters) ([]domain.Budget, error) {
	var budgets []domain.Budget
	for _, id := range r.ids {
		b, ok := r.budgets[id]
		if !ok || b.EventID != eventID {
			continue
		}
		if filters.Status != nil && b.Status != *filters.Status {
			continue
		}
		budgets = append(budgets, *b)
	}
	return budgets, nil
}

func (r *memBudgetRepo) ListApprovedByEvent(_ context.Context, eventID string) ([]domain.Budget, error) {
	var budgets []domain.Budget
	for _, id := range r.ids {
		b, ok := r.budgets[id]
		if ok && b.EventID == eventID && b.Status == domain.BudgetApproved {
			budgets = append(budgets, *b)
		}
	}
	return budgets, nil
}

func (r *memBudgetRepo) Update(_ context.Context, id string, patch domain.BudgetPatch) (*domain.Budget, error) {
	b, ok := r.budgets[id]
	if !ok {
		return nil, nil
	}
	if patch.Value != nil {
		b.Value = *patch.Value
	}
	if patch.Status != nil {
		b.Status = *patch.Status
	}
	b.UpdatedAt = time.Now()
	cp := *b
	return &cp, nil
}

func (r *memBudgetRepo) SetStatus(_ context.Context, id string, status domain.BudgetStatus) (*domain.Budget, error) {
	b, ok := r.budgets[id]
	if !ok {
		return nil, nil
	}
	b.Status = status
	b.UpdatedAt = time.Now()
	cp := *b
	return &cp, nil
}

func (r *memBudgetRepo) Delete(_ context.Context, id string) (bool, error) {
	if _, ok := r.budgets[id]; !ok {
		return false, nil
	}
	delete(r.budgets, id)
	return true, nil
}

type memVendorRepo struct {
	vendors map[string]*domain.Vendor
	nextID  int
}

func newMemVendorRepo() *memVendorRepo {
	return &memVendorRepo{vendors: map[string]*domain.Vendor{}}
}

func (r *memVendorRepo) add(eventID string, status domain.VendorStatus, value *float64) *domain.Vendor {
	r.nextID++
	v := &domain.Vendor{
		ID: fmt.Sprintf("vendor-%d", r.nextID), EventID: eventID, Name: "Vendor",
		Category: domain.SpendOutro, Value: value, Status: status,
		CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}
	r.vendors[v.ID] = v
	return v
}

func (r *memVendorRepo) Create(_ context.Context, req *domain.CreateVendorRequest) (*domain.Vendor, error) {
	r.nextID++
	v := &domain.Vendor{
		ID: fmt.Sprintf("vendor-%d", r.nextID), EventID: req.EventID, Name: req.Name,
		Category: req.Category, Contact: req.Contact, Phone: req.Phone, Email: req.Email,
		Value: req.Value, Status: domain.VendorPending, Rating: req.Rating, Notes: req.Notes,
		CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}
	r.vendors[v.ID] = v
	return v, nil
}

func (r *memVendorRepo) GetByID(_ context.Context, id string) (*domain.Vendor, error) {
	return r.vendors[id], nil
}

func (r *memVendorRepo) ListByEvent(_ context.Context, eventID string, filters domain.VendorFilters) ([]domain.Vendor, error) {
	var vendors []domain.Vendor
	for _, v := range r.vendors {
		if v.EventID != eventID {
			continue
		}
		if filters.Status != nil && v.Status != *filters.Status {
			continue
		}
		vendors = append(vendors, *v)
	}
	return vendors, nil
}

func (r *memVendorRepo) ListStatuses(_ context.Context, eventID string) ([]string, error) {
	var statuses []string
	for _, v := range r.vendors {
		if v.EventID == eventID {
			statuses = append(statuses, string(v.Status))
		}
	}
	return statuses, nil
}

func (r *memVendorRepo) Update(_ context.Context, id string, patch domain.VendorPatch) (*domain.Vendor, error) {
	v, ok := r.vendors[id]
	if !ok {
		return nil, nil
	}
	if patch.Name != nil {
		v.Name = *patch.Name
	}
	if patch.Status != nil {
		v.Status = *patch.Status
	}
	v.UpdatedAt = time.Now()
	return v, nil
}

func (r *memVendorRepo) SetStatus(_ context.Context, id string, status domain.VendorStatus) (*domain.Vendor, error) {
	v, ok := r.vendors[id]
	if !ok {
		return nil, nil
	}
	v.Status = status
	v.UpdatedAt = time.Now()
	return v, nil
}

func (r *memVendorRepo) Delete(_ context.Context, id string) (bool, error) {
	if _, ok := r.vendors[id]; !ok {
		return false, nil
	}
	delete(r.vendors, id)
	return true, nil
}

// nopPublisher swallows events; tests that care record subjects instead.
type nopPublisher struct {
	subjects []string
}

func (p *nopPublisher) Publish(_ context.Context, subject string, _ interface{}) error {
	p.subjects = append(p.subjects, subject)
	return nil
}

func (p *nopPublisher) Close() error { return nil }

func floatPtr(v float64) *float64 { return &v }

func timePtr(t time.Time) *time.Time { return &t }
