package session

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hitoshi/gatehouse/internal/model"
)

// ErrMalformedSession は永続化データが期待する形式でない場合のエラー。
// Loadはこのエラーを呼び出し側に返さず、セッションなしとして扱う。
var ErrMalformedSession = errors.New("malformed session data")

// record は永続化レイアウト。フィールド名は id, email, name, role, flatNumber。
type record struct {
	ID         string  `json:"id"`
	Email      string  `json:"email"`
	Name       string  `json:"name"`
	Role       string  `json:"role"`
	FlatNumber *string `json:"flatNumber,omitempty"`
}

// Encode はIdentityを永続化用のJSONに変換する。
func Encode(ident *model.Identity) ([]byte, error) {
	if ident == nil {
		return nil, fmt.Errorf("identity is nil")
	}
	rec := record{
		ID:    ident.ID,
		Email: ident.Email,
		Name:  ident.Name,
		Role:  string(ident.Role),
	}
	if ident.HasFlatNumber() {
		flat := ident.FlatNumber
		rec.FlatNumber = &flat
	}
	return json.Marshal(rec)
}

// Decode は永続化データをIdentityに復元する。
// JSONとして解析できない、IDが空、ロールが列挙外、
// またはflatNumberの有無がロールと矛盾する場合はErrMalformedSessionを返す。
func Decode(data []byte) (*model.Identity, error) {
	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedSession, err)
	}

	if rec.ID == "" {
		return nil, fmt.Errorf("%w: missing id", ErrMalformedSession)
	}

	role, err := model.ParseRole(rec.Role)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedSession, err)
	}

	ident := &model.Identity{
		ID:    rec.ID,
		Email: rec.Email,
		Name:  rec.Name,
		Role:  role,
	}
	if rec.FlatNumber != nil {
		ident.FlatNumber = *rec.FlatNumber
	}
	if ident.HasFlatNumber() != (role == model.RoleResident) {
		return nil, fmt.Errorf("%w: flatNumber does not match role %s", ErrMalformedSession, role)
	}
	return ident, nil
}
