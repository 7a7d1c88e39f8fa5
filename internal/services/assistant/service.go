package assistant

import (
	"context"
	"fmt"
	"strings"
	"time"

	"clinic/internal/models"
	"clinic/internal/repositories"
	"clinic/internal/services/access"
	"clinic/internal/validation"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

type service struct {
	repo     Repository
	branches BranchFinder
	clinics  ClinicResolver
	log      *zap.Logger
	now      func() time.Time
}

// NewService creates a new assistant service instance
func NewService(repo Repository, branches BranchFinder, clinics ClinicResolver, log *zap.Logger) Service {
	if repo == nil {
		panic("assistant repository is required")
	}
	if branches == nil {
		panic("branch finder is required")
	}
	if clinics == nil {
		panic("clinic resolver is required")
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &service{
		repo:     repo,
		branches: branches,
		clinics:  clinics,
		log:      log.Named("assistant"),
		now:      time.Now,
	}
}

func (s *service) Create(ctx context.Context, caller models.Caller, in CreateInput) (*View, error) {
	v := validation.New()
	name := strings.TrimSpace(in.Name)
	surname := strings.TrimSpace(in.Surname)
	checkName(v, "name", name)
	checkName(v, "surname", surname)
	nickname := normalizeNickname(v, in.Nickname)
	checkGender(v, in.Gender)
	checkEmployment(v, in.EmploymentType)
	birthday := parseBirthday(v, in.Birthday)
	assignments := buildBranches(v, in.Branches)
	if err := v.Err(); err != nil {
		return nil, err
	}

	scoped, err := access.ScopeCreate(caller, in.ClinicID)
	if err != nil {
		return nil, err
	}
	clinicID, err := access.ClinicUUID(scoped)
	if err != nil {
		return nil, err
	}
	if caller.IsSuperAdmin() {
		if err := access.RequireClinic(ctx, s.clinics, clinicID); err != nil {
			return nil, err
		}
	}

	a := &models.Assistant{
		Name:           name,
		Surname:        surname,
		Nickname:       nickname,
		Gender:         in.Gender,
		EmploymentType: in.EmploymentType,
		Birthday:       birthday,
		ClinicID:       clinicID,
		Branches:       assignments,
		IsActive:       true,
	}
	if in.IsActive != nil {
		a.IsActive = *in.IsActive
	}

	if err := s.checkBranches(ctx, clinicID, a.BranchIDs()); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}

	s.log.Info("assistant created",
		zap.String("assistant_id", a.ID.String()),
		zap.String("clinic_id", clinicID.String()),
		zap.Int("branches", len(a.Branches)))

	return s.view(ctx, a, false)
}

func (s *service) Get(ctx context.Context, caller models.Caller, id uuid.UUID, populateClinic bool) (*View, error) {
	a, err := s.load(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, a, populateClinic)
}

func (s *service) List(ctx context.Context, caller models.Caller, f ListFilter) ([]View, int64, error) {
	clinicID, err := access.ScopeFilter(caller, f.ClinicID)
	if err != nil {
		return nil, 0, err
	}
	filter := repositories.AssistantFilter{
		ListQuery: repositories.ListQuery{
			ClinicID: clinicID,
			Search:   f.Search,
			Sort:     f.Sort,
			Offset:   f.Offset,
			Limit:    f.Limit,
		},
		IsActive:       f.IsActive,
		EmploymentType: string(f.EmploymentType),
	}
	if f.EmploymentType != "" {
		v := validation.New()
		checkEmployment(v, f.EmploymentType)
		if err := v.Err(); err != nil {
			return nil, 0, err
		}
	}
	if f.BranchID != "" {
		branchID, err := uuid.Parse(f.BranchID)
		if err != nil {
			return nil, 0, validation.Field("branch_id", "must be a valid UUID")
		}
		filter.BranchID = &branchID
	}

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	var clinics map[string]models.Clinic
	if f.PopulateClinic && len(items) > 0 {
		ids := make([]uuid.UUID, len(items))
		for i := range items {
			ids[i] = items[i].ClinicID
		}
		if clinics, err = s.clinics.Resolve(ctx, ids); err != nil {
			return nil, 0, err
		}
	}

	now := s.now()
	views := make([]View, len(items))
	for i := range items {
		views[i] = buildView(&items[i], clinics, now)
	}
	return views, total, nil
}

func (s *service) Update(ctx context.Context, caller models.Caller, id uuid.UUID, in UpdateInput) (*View, error) {
	a, err := s.load(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	v := validation.New()
	if in.Name != nil {
		a.Name = strings.TrimSpace(*in.Name)
		checkName(v, "name", a.Name)
	}
	if in.Surname != nil {
		a.Surname = strings.TrimSpace(*in.Surname)
		checkName(v, "surname", a.Surname)
	}
	if in.Nickname != nil {
		a.Nickname = normalizeNickname(v, in.Nickname)
	}
	if in.Gender != nil {
		checkGender(v, *in.Gender)
		a.Gender = *in.Gender
	}
	if in.EmploymentType != nil {
		checkEmployment(v, *in.EmploymentType)
		a.EmploymentType = *in.EmploymentType
	}
	if in.Birthday != nil {
		a.Birthday = parseBirthday(v, in.Birthday)
	}
	if in.IsActive != nil {
		a.IsActive = *in.IsActive
	}
	replaceBranches := in.Branches != nil
	if replaceBranches {
		a.Branches = buildBranches(v, *in.Branches)
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	clinicChanged := false
	if in.ClinicID != nil && caller.IsSuperAdmin() {
		clinicID, err := access.ClinicUUID(models.CanonicalClinicID(*in.ClinicID))
		if err != nil {
			return nil, err
		}
		if clinicID != a.ClinicID {
			if err := access.RequireClinic(ctx, s.clinics, clinicID); err != nil {
				return nil, err
			}
			clinicChanged = true
		}
		a.ClinicID = clinicID
	}

	if replaceBranches || clinicChanged {
		if err := s.checkBranches(ctx, a.ClinicID, a.BranchIDs()); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Update(ctx, a, replaceBranches); err != nil {
		return nil, err
	}

	s.log.Info("assistant updated",
		zap.String("assistant_id", a.ID.String()),
		zap.Bool("branches_replaced", replaceBranches))

	return s.view(ctx, a, false)
}

func (s *service) Delete(ctx context.Context, caller models.Caller, id uuid.UUID) error {
	if _, err := s.load(ctx, caller, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("assistant deleted", zap.String("assistant_id", id.String()))
	return nil
}

func (s *service) SetStatus(ctx context.Context, caller models.Caller, id uuid.UUID, active bool) (*View, error) {
	a, err := s.load(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.SetActive(ctx, id, active); err != nil {
		return nil, err
	}
	a.IsActive = active

	s.log.Info("assistant status changed",
		zap.String("assistant_id", id.String()),
		zap.Bool("is_active", active))

	return s.view(ctx, a, false)
}

func (s *service) load(ctx context.Context, caller models.Caller, id uuid.UUID) (*models.Assistant, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := access.Authorize(caller, models.ClinicRefFor(a.ClinicID)); err != nil {
		return nil, err
	}
	return a, nil
}

// checkBranches rejects the whole operation when any referenced branch is
// missing or owned by a different clinic.
func (s *service) checkBranches(ctx context.Context, clinicID uuid.UUID, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}

	found, err := s.branches.FindByIDs(ctx, ids)
	if err != nil {
		return err
	}

	owner := make(map[uuid.UUID]uuid.UUID, len(found))
	for _, b := range found {
		owner[b.ID] = b.ClinicID
	}

	var missing, foreign []uuid.UUID
	for _, id := range ids {
		clinic, ok := owner[id]
		switch {
		case !ok:
			missing = append(missing, id)
		case clinic != clinicID:
			foreign = append(foreign, id)
		}
	}
	if len(missing) > 0 {
		return errUnknownBranches(missing)
	}
	if len(foreign) > 0 {
		return errForeignBranches(foreign)
	}
	return nil
}

func (s *service) view(ctx context.Context, a *models.Assistant, populate bool) (*View, error) {
	var clinics map[string]models.Clinic
	if populate {
		var err error
		if clinics, err = s.clinics.Resolve(ctx, []uuid.UUID{a.ClinicID}); err != nil {
			return nil, err
		}
	}
	v := buildView(a, clinics, s.now())
	return &v, nil
}

func buildView(a *models.Assistant, clinics map[string]models.Clinic, now time.Time) View {
	return View{
		Assistant: *a,
		Clinic:    models.ClinicRefFor(a.ClinicID).Resolve(clinics),
		FullName:  a.FullName(),
		Age:       a.Age(now),
	}
}

func checkName(v *validation.Validator, field, value string) {
	v.Required(field, value)
	v.MaxLength(field, value, MaxNameLength)
}

func normalizeNickname(v *validation.Validator, nickname *string) *string {
	if nickname == nil {
		return nil
	}
	n := strings.TrimSpace(*nickname)
	if n == "" {
		return nil
	}
	v.MaxLength("nickname", n, MaxNameLength)
	return &n
}

func checkGender(v *validation.Validator, g models.Gender) {
	validation.OneOf(v, "gender", g, models.GenderMale, models.GenderFemale, models.GenderOther)
}

func checkEmployment(v *validation.Validator, e models.EmploymentType) {
	validation.OneOf(v, "employment_type", e, models.EmploymentPartTime, models.EmploymentFullTime)
}

func parseBirthday(v *validation.Validator, raw *string) *time.Time {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil
	}
	b, err := time.Parse(BirthdayLayout, strings.TrimSpace(*raw))
	if err != nil {
		v.AddError("birthday", "must be a date in YYYY-MM-DD format")
		return nil
	}
	return &b
}

// buildBranches validates branch assignments and converts them to models.
func buildBranches(v *validation.Validator, in []BranchInput) []models.AssistantBranch {
	out := make([]models.AssistantBranch, 0, len(in))
	for i, b := range in {
		field := fmt.Sprintf("branches[%d]", i)

		branchID, err := uuid.Parse(strings.TrimSpace(b.BranchID))
		if err != nil {
			v.AddError(field+".branch_id", "must be a valid UUID")
			continue
		}

		seenDays := make(map[models.Weekday]bool, len(b.Timetable))
		timetable := make([]models.TimetableEntry, 0, len(b.Timetable))
		for j, entry := range b.Timetable {
			entryField := fmt.Sprintf("%s.timetable[%d]", field, j)
			day := models.Weekday(strings.ToUpper(strings.TrimSpace(string(entry.Day))))
			validation.OneOf(v, entryField+".day", day, models.Weekdays...)
			if seenDays[day] {
				v.AddError(entryField+".day", "is listed more than once")
			}
			seenDays[day] = true

			times := make(pq.StringArray, 0, len(entry.Time))
			for k, slot := range entry.Time {
				slot = strings.TrimSpace(slot)
				if !validSlot(slot) {
					v.AddError(fmt.Sprintf("%s.time[%d]", entryField, k), "must be HH:MM or HH:MM-HH:MM")
					continue
				}
				times = append(times, slot)
			}
			timetable = append(timetable, models.TimetableEntry{Day: day, Time: times})
		}

		out = append(out, models.AssistantBranch{BranchID: branchID, Timetable: timetable})
	}
	return out
}

func validSlot(slot string) bool {
	if !timeSlot.MatchString(slot) {
		return false
	}
	if start, end, ok := strings.Cut(slot, "-"); ok {
		return start < end
	}
	return true
}
