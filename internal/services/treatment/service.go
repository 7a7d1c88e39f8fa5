package treatment

import (
	"context"
	"strings"

	"clinic/internal/models"
	"clinic/internal/repositories"
	"clinic/internal/services/access"
	"clinic/internal/services/fee"
	"clinic/internal/validation"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type service struct {
	repo    Repository
	clinics ClinicResolver
	log     *zap.Logger
}

// NewService creates a new treatment service instance
func NewService(repo Repository, clinics ClinicResolver, log *zap.Logger) Service {
	if repo == nil {
		panic("treatment repository is required")
	}
	if clinics == nil {
		panic("clinic resolver is required")
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &service{repo: repo, clinics: clinics, log: log.Named("treatment")}
}

func (s *service) Create(ctx context.Context, caller models.Caller, in CreateInput) (*View, error) {
	in.Name = strings.TrimSpace(in.Name)

	v := validation.New()
	v.Required("name", in.Name)
	v.MaxLength("name", in.Name, MaxNameLength)
	if in.Price == nil {
		v.AddError("price", "is required")
	} else {
		v.NonNegative("price", *in.Price)
	}
	fee.CheckFeeSpec(v, "doctor_fee", in.DoctorFee)
	fee.CheckFeeSpec(v, "assistant_fee", in.AssistantFee)
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

	if err := s.ensureUniqueName(ctx, clinicID, in.Name, nil); err != nil {
		return nil, err
	}

	t := &models.Treatment{
		Name:         in.Name,
		Price:        *in.Price,
		IncludeVat:   in.IncludeVat,
		DoctorFee:    in.DoctorFee,
		AssistantFee: in.AssistantFee,
		ClinicID:     clinicID,
	}
	t.Normalize()

	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}

	s.log.Info("treatment created",
		zap.String("treatment_id", t.ID.String()),
		zap.String("clinic_id", t.ClinicID.String()),
		zap.String("user_id", caller.UserID.String()))

	return s.view(ctx, t, ViewOptions{WithCalculations: true})
}

func (s *service) Get(ctx context.Context, caller models.Caller, id uuid.UUID, opts ViewOptions) (*View, error) {
	t, err := s.load(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, t, opts)
}

func (s *service) List(ctx context.Context, caller models.Caller, f ListFilter) ([]View, int64, error) {
	clinicID, err := access.ScopeFilter(caller, f.ClinicID)
	if err != nil {
		return nil, 0, err
	}
	items, total, err := s.repo.List(ctx, repositories.TreatmentFilter{
		ListQuery: repositories.ListQuery{
			ClinicID: clinicID,
			Search:   f.Name,
			Sort:     f.Sort,
			Offset:   f.Offset,
			Limit:    f.Limit,
		},
		IncludeVat: f.IncludeVat,
	})
	if err != nil {
		return nil, 0, err
	}

	clinics, err := s.resolveClinics(ctx, items, f.PopulateClinic)
	if err != nil {
		return nil, 0, err
	}

	views := make([]View, len(items))
	for i := range items {
		views[i] = buildView(&items[i], clinics, f.WithCalculations)
	}
	return views, total, nil
}

func (s *service) Update(ctx context.Context, caller models.Caller, id uuid.UUID, in UpdateInput) (*View, error) {
	t, err := s.load(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	v := validation.New()
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		in.Name = &name
		v.Required("name", name)
		v.MaxLength("name", name, MaxNameLength)
	}
	if in.Price != nil {
		v.NonNegative("price", *in.Price)
	}
	fee.CheckFeeSpec(v, "doctor_fee", in.DoctorFee)
	fee.CheckFeeSpec(v, "assistant_fee", in.AssistantFee)
	if err := v.Err(); err != nil {
		return nil, err
	}

	nameOrClinicChanged := false
	if in.Name != nil && *in.Name != t.Name {
		t.Name = *in.Name
		nameOrClinicChanged = true
	}
	if in.ClinicID != nil && caller.IsSuperAdmin() {
		clinicID, err := access.ClinicUUID(models.CanonicalClinicID(*in.ClinicID))
		if err != nil {
			return nil, err
		}
		if clinicID != t.ClinicID {
			if err := access.RequireClinic(ctx, s.clinics, clinicID); err != nil {
				return nil, err
			}
			t.ClinicID = clinicID
			nameOrClinicChanged = true
		}
	}
	if in.Price != nil {
		t.Price = *in.Price
	}
	if in.IncludeVat != nil {
		t.IncludeVat = *in.IncludeVat
	}
	switch {
	case in.RemoveDoctorFee:
		t.DoctorFee = nil
	case in.DoctorFee != nil:
		t.DoctorFee = in.DoctorFee
	}
	switch {
	case in.RemoveAssistantFee:
		t.AssistantFee = nil
	case in.AssistantFee != nil:
		t.AssistantFee = in.AssistantFee
	}
	t.Normalize()

	if nameOrClinicChanged {
		if err := s.ensureUniqueName(ctx, t.ClinicID, t.Name, &t.ID); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Update(ctx, t); err != nil {
		return nil, err
	}

	s.log.Info("treatment updated",
		zap.String("treatment_id", t.ID.String()),
		zap.String("user_id", caller.UserID.String()))

	return s.view(ctx, t, ViewOptions{WithCalculations: true})
}

func (s *service) Delete(ctx context.Context, caller models.Caller, id uuid.UUID) error {
	if _, err := s.load(ctx, caller, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info("treatment deleted",
		zap.String("treatment_id", id.String()),
		zap.String("user_id", caller.UserID.String()))
	return nil
}

func (s *service) PreviewFees(ctx context.Context, caller models.Caller, id uuid.UUID, o FeeOverride) (*fee.Calculation, error) {
	t, err := s.load(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	v := validation.New()
	fee.CheckFeeSpec(v, "doctor_fee", o.DoctorFee)
	fee.CheckFeeSpec(v, "assistant_fee", o.AssistantFee)
	if err := v.Err(); err != nil {
		return nil, err
	}

	includeVat := t.IncludeVat
	if o.IncludeVat != nil {
		includeVat = *o.IncludeVat
	}
	doctorFee := t.DoctorFee
	if o.DoctorFee != nil {
		doctorFee = o.DoctorFee
	}
	assistantFee := t.AssistantFee
	if o.AssistantFee != nil {
		assistantFee = o.AssistantFee
	}

	calc := fee.ComputeFees(t.Price, includeVat, doctorFee, assistantFee)
	return &calc, nil
}

func (s *service) Calculate(in CalculateInput) (*fee.Calculation, error) {
	v := validation.New()
	v.NonNegative("price", in.Price)
	fee.CheckFeeSpec(v, "doctor_fee", in.DoctorFee)
	fee.CheckFeeSpec(v, "assistant_fee", in.AssistantFee)
	if err := v.Err(); err != nil {
		return nil, err
	}

	calc := fee.ComputeFees(in.Price, in.IncludeVat, in.DoctorFee, in.AssistantFee)
	return &calc, nil
}

// load fetches a treatment and checks the caller may act on it, in that order.
func (s *service) load(ctx context.Context, caller models.Caller, id uuid.UUID) (*models.Treatment, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := access.Authorize(caller, models.ClinicRefFor(t.ClinicID)); err != nil {
		s.log.Warn("treatment access denied",
			zap.String("treatment_id", id.String()),
			zap.String("user_id", caller.UserID.String()))
		return nil, err
	}
	return t, nil
}

func (s *service) ensureUniqueName(ctx context.Context, clinicID uuid.UUID, name string, excludeID *uuid.UUID) error {
	exists, err := s.repo.ExistsByName(ctx, clinicID, name, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return errDuplicateName(name)
	}
	return nil
}

func (s *service) view(ctx context.Context, t *models.Treatment, opts ViewOptions) (*View, error) {
	clinics, err := s.resolveClinics(ctx, []models.Treatment{*t}, opts.PopulateClinic)
	if err != nil {
		return nil, err
	}
	v := buildView(t, clinics, opts.WithCalculations)
	return &v, nil
}

func (s *service) resolveClinics(ctx context.Context, items []models.Treatment, populate bool) (map[string]models.Clinic, error) {
	if !populate || len(items) == 0 {
		return nil, nil
	}
	ids := make([]uuid.UUID, len(items))
	for i := range items {
		ids[i] = items[i].ClinicID
	}
	return s.clinics.Resolve(ctx, ids)
}

func buildView(t *models.Treatment, clinics map[string]models.Clinic, withCalculations bool) View {
	v := View{
		Treatment: *t,
		Clinic:    models.ClinicRefFor(t.ClinicID).Resolve(clinics),
	}
	if withCalculations {
		calc := fee.ForTreatment(t)
		v.Calculations = &calc
	}
	return v
}
