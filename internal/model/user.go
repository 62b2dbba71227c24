package model

// Identity はログイン済みユーザーを表す。
// FlatNumberはRoleがresidentの場合のみ設定される。
type Identity struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	Role       Role   `json:"role"`
	FlatNumber string `json:"flatNumber,omitempty"`
}

// HasFlatNumber は部屋番号を持つかどうかを返す。
func (i *Identity) HasFlatNumber() bool {
	return i.FlatNumber != ""
}

// Clone はIdentityのコピーを返す。nilの場合はnilを返す。
func (i *Identity) Clone() *Identity {
	if i == nil {
		return nil
	}
	c := *i
	return &c
}
