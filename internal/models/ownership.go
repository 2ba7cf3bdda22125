package models

// OwnedBy сообщает, принадлежит ли поездка данному пользователю.
// Сравнение идёт по UID владельца. Чистая функция без побочных эффектов,
// применяется перед любым чтением или изменением данных поездки.
func (t *Trip) OwnedBy(u *User) bool {
	if t == nil || u == nil {
		return false
	}
	return t.OwnerUID == u.UID
}
