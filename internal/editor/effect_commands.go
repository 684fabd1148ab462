package editor

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/queue-backend/internal/domain"
)

// UpsertEffect stores an effect on its object keyed by (index, type). An
// existing effect with the same key is replaced and keeps its id. No effect
// may sit past the object's remove effect.
type UpsertEffect struct {
	Effect domain.Effect `json:"effect"`
}

func (UpsertEffect) Name() string      { return "upsertEffect" }
func (UpsertEffect) kind() commandKind { return kindMutation }

func (c UpsertEffect) apply(t *tx) (any, error) {
	e := c.Effect
	if e.ObjectID == "" {
		return nil, domain.NewValidationError("effect.objectId", "required")
	}
	_, o, err := t.object(e.ObjectID)
	if err != nil {
		return nil, err
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Timing == "" {
		e.Timing = domain.TimingLinear
	}
	if errs := e.Validate(); len(errs) > 0 {
		return nil, prefixed("effect", errs)
	}
	if p, ok := e.Type.Property(); ok && !o.Type.Supports(p) {
		return nil, domain.NewValidationError("effect.type", fmt.Sprintf("%s effects are not supported by %s objects", e.Type, o.Type))
	}
	if i, own := o.EffectByID(e.ID); own {
		if cur := o.Effects[i]; cur.Index != e.Index || cur.Type != e.Type {
			return nil, fmt.Errorf("upsert effect: id %q is used at another index or type: %w", e.ID, domain.ErrConflict)
		}
	} else if t.doc.HasID(e.ID) {
		return nil, fmt.Errorf("upsert effect: id %q: %w", e.ID, domain.ErrAlreadyExists)
	}
	stored := o.UpsertEffect(e)
	if err := checkLifespan(*o); err != nil {
		return nil, err
	}
	return stored, nil
}

func checkLifespan(o domain.Object) error {
	end, removed := o.RemovedAt()
	if !removed {
		return nil
	}
	for _, e := range o.Effects {
		if e.Index > end {
			return domain.NewInvalidOperationError("upsertEffect",
				fmt.Sprintf("object %s is removed at index %d but has a %s effect at index %d", o.ID, end, e.Type, e.Index))
		}
	}
	return nil
}

// RemoveEffect deletes one effect from an object.
type RemoveEffect struct {
	ObjectID string `json:"objectId"`
	EffectID string `json:"effectId"`
}

func (RemoveEffect) Name() string      { return "removeEffect" }
func (RemoveEffect) kind() commandKind { return kindMutation }

func (c RemoveEffect) apply(t *tx) (any, error) {
	_, o, err := t.object(c.ObjectID)
	if err != nil {
		return nil, err
	}
	if !o.RemoveEffect(c.EffectID) {
		return nil, domain.NewNotFoundError("effect", c.EffectID)
	}
	return nil, nil
}

func prefixed(prefix string, errs []domain.FieldError) error {
	out := make([]domain.FieldError, len(errs))
	for i, e := range errs {
		out[i] = domain.FieldError{Field: prefix + "." + e.Field, Message: e.Message}
	}
	return domain.NewValidationErrors(out)
}
