// Package idtype implements the 64-bit opaque identifiers used throughout
// the sport-log data model (§3, §9 "typed-id newtypes"). Every entity id is a
// distinct Go type wrapping an int64 so that, for example, a MovementID can
// never be passed where an ActionEventID is expected. On the wire every id is
// a decimal string, to survive 53-bit-float JSON clients (§6).
package idtype

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/json"
	"strconv"
)

// UserID identifies a User.
type UserID int64

// ActionProviderID identifies an ActionProvider.
type ActionProviderID int64

// PlatformID identifies a Platform.
type PlatformID int64

// PlatformCredentialID identifies a PlatformCredential.
type PlatformCredentialID int64

// ActionID identifies an Action.
type ActionID int64

// ActionRuleID identifies an ActionRule.
type ActionRuleID int64

// ActionEventID identifies an ActionEvent.
type ActionEventID int64

// MovementID identifies a Movement.
type MovementID int64

// CardioSessionID identifies a CardioSession.
type CardioSessionID int64

// WodID identifies a Wod.
type WodID int64

// New generates a random, non-zero 64-bit id. Collisions are handled at
// insert time by the caller (a unique constraint on the id column), per §3
// "assigned by the creator (random, collision-checked at insert)".
func New[T ~int64]() T {
	for {
		var buf [8]byte
		if _, err := rand.Read(buf[:]); err != nil {
			panic("idtype: failed to read random bytes: " + err.Error())
		}
		v := int64(binary.BigEndian.Uint64(buf[:]))
		if v != 0 {
			return T(v)
		}
	}
}

// marshalDecimal renders v as a JSON decimal string.
func marshalDecimal(v int64) ([]byte, error) {
	return json.Marshal(strconv.FormatInt(v, 10))
}

// unmarshalDecimal parses a JSON decimal string (or bare JSON number, for
// leniency) into v.
func unmarshalDecimal(data []byte) (int64, error) {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		return strconv.ParseInt(s, 10, 64)
	}
	var n int64
	if err := json.Unmarshal(data, &n); err != nil {
		return 0, err
	}
	return n, nil
}

// MarshalJSON implementations, one per id type, satisfy json.Marshaler so
// every id crosses the wire as a decimal string (§6).

func (id UserID) MarshalJSON() ([]byte, error) { return marshalDecimal(int64(id)) }
func (id *UserID) UnmarshalJSON(data []byte) error {
	v, err := unmarshalDecimal(data)
	if err != nil {
		return err
	}
	*id = UserID(v)
	return nil
}

func (id ActionProviderID) MarshalJSON() ([]byte, error) { return marshalDecimal(int64(id)) }
func (id *ActionProviderID) UnmarshalJSON(data []byte) error {
	v, err := unmarshalDecimal(data)
	if err != nil {
		return err
	}
	*id = ActionProviderID(v)
	return nil
}

func (id PlatformID) MarshalJSON() ([]byte, error) { return marshalDecimal(int64(id)) }
func (id *PlatformID) UnmarshalJSON(data []byte) error {
	v, err := unmarshalDecimal(data)
	if err != nil {
		return err
	}
	*id = PlatformID(v)
	return nil
}

func (id PlatformCredentialID) MarshalJSON() ([]byte, error) { return marshalDecimal(int64(id)) }
func (id *PlatformCredentialID) UnmarshalJSON(data []byte) error {
	v, err := unmarshalDecimal(data)
	if err != nil {
		return err
	}
	*id = PlatformCredentialID(v)
	return nil
}

func (id ActionID) MarshalJSON() ([]byte, error) { return marshalDecimal(int64(id)) }
func (id *ActionID) UnmarshalJSON(data []byte) error {
	v, err := unmarshalDecimal(data)
	if err != nil {
		return err
	}
	*id = ActionID(v)
	return nil
}

func (id ActionRuleID) MarshalJSON() ([]byte, error) { return marshalDecimal(int64(id)) }
func (id *ActionRuleID) UnmarshalJSON(data []byte) error {
	v, err := unmarshalDecimal(data)
	if err != nil {
		return err
	}
	*id = ActionRuleID(v)
	return nil
}

func (id ActionEventID) MarshalJSON() ([]byte, error) { return marshalDecimal(int64(id)) }
func (id *ActionEventID) UnmarshalJSON(data []byte) error {
	v, err := unmarshalDecimal(data)
	if err != nil {
		return err
	}
	*id = ActionEventID(v)
	return nil
}

func (id MovementID) MarshalJSON() ([]byte, error) { return marshalDecimal(int64(id)) }
func (id *MovementID) UnmarshalJSON(data []byte) error {
	v, err := unmarshalDecimal(data)
	if err != nil {
		return err
	}
	*id = MovementID(v)
	return nil
}

func (id CardioSessionID) MarshalJSON() ([]byte, error) { return marshalDecimal(int64(id)) }
func (id *CardioSessionID) UnmarshalJSON(data []byte) error {
	v, err := unmarshalDecimal(data)
	if err != nil {
		return err
	}
	*id = CardioSessionID(v)
	return nil
}

func (id WodID) MarshalJSON() ([]byte, error) { return marshalDecimal(int64(id)) }
func (id *WodID) UnmarshalJSON(data []byte) error {
	v, err := unmarshalDecimal(data)
	if err != nil {
		return err
	}
	*id = WodID(v)
	return nil
}
