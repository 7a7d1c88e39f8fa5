package models

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"
)

// ClinicRefKind discriminates the two shapes a clinic reference can take.
type ClinicRefKind int

const (
	ClinicUnresolved ClinicRefKind = iota
	ClinicResolved
)

// ClinicRef points at the clinic owning a record. Unresolved refs carry only
// the id; resolved refs also carry the clinic's name.
type ClinicRef struct {
	Kind ClinicRefKind
	ID   string
	Name string
}

func UnresolvedClinic(id string) ClinicRef {
	return ClinicRef{Kind: ClinicUnresolved, ID: id}
}

func ResolvedClinic(id, name string) ClinicRef {
	return ClinicRef{Kind: ClinicResolved, ID: id, Name: name}
}

// ClinicRefFor builds an unresolved reference from a stored clinic id.
func ClinicRefFor(id uuid.UUID) ClinicRef {
	return UnresolvedClinic(id.String())
}

// Key is the canonical clinic id used for comparisons.
func (r ClinicRef) Key() string {
	return CanonicalClinicID(r.ID)
}

// Resolve upgrades r using the clinic record, keeping r unchanged on a miss.
func (r ClinicRef) Resolve(clinics map[string]Clinic) ClinicRef {
	if c, ok := clinics[r.Key()]; ok {
		return ResolvedClinic(r.ID, c.Name)
	}
	return r
}

func (r ClinicRef) MarshalJSON() ([]byte, error) {
	switch r.Kind {
	case ClinicResolved:
		return json.Marshal(struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		}{r.ID, r.Name})
	default:
		return json.Marshal(r.ID)
	}
}

func (r *ClinicRef) UnmarshalJSON(data []byte) error {
	var id string
	if err := json.Unmarshal(data, &id); err == nil {
		*r = UnresolvedClinic(id)
		return nil
	}
	var obj struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*r = ResolvedClinic(obj.ID, obj.Name)
	return nil
}

// CanonicalClinicID normalizes a clinic identifier so that different
// spellings of the same UUID compare equal. Other ids are only trimmed.
func CanonicalClinicID(id string) string {
	id = strings.TrimSpace(id)
	if id == "" {
		return ""
	}
	if parsed, err := uuid.Parse(id); err == nil {
		return parsed.String()
	}
	return id
}
