// file: internals/helpers/errs/errs_test.go
package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakePGErr struct{ state string }

func (f *fakePGErr) SQLState() string { return f.state }
func (f *fakePGErr) Error() string    { return "pg error " + f.state }

func TestKindInspectors(t *testing.T) {
	assert.True(t, IsValidation(Validationf("day_of_week %d di luar 1..7", 9)))
	assert.True(t, IsNotFound(NotFound("group tidak ditemukan")))
	assert.True(t, IsConflict(Conflictf(3, "masih dipakai")))
	assert.True(t, IsTransient(Transient(errors.New("conn reset"))))

	// wrapped tetap terdeteksi
	wrapped := fmt.Errorf("upsert: %w", Conflictf(5, "dipakai"))
	assert.True(t, IsConflict(wrapped))
	assert.Equal(t, 5, ImpactOf(wrapped))
	assert.Equal(t, 0, ImpactOf(Validationf("x")))
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(Validationf("x")))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(NotFound("x")))
	assert.Equal(t, http.StatusConflict, HTTPStatus(Conflictf(1, "x")))
	assert.Equal(t, http.StatusServiceUnavailable, HTTPStatus(Transient(errors.New("x"))))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("plain")))
}

func TestFromStorage(t *testing.T) {
	assert.Nil(t, FromStorage(nil))
	assert.True(t, IsNotFound(FromStorage(gorm.ErrRecordNotFound)))
	assert.True(t, IsConflict(FromStorage(&fakePGErr{state: "23505"})))
	assert.True(t, IsValidation(FromStorage(&fakePGErr{state: "23503"})))
	assert.True(t, IsTransient(FromStorage(errors.New("driver: bad connection"))))

	// taxonomy error lewat tanpa dibungkus ulang
	orig := NotFound("student tidak ditemukan")
	assert.Equal(t, orig, FromStorage(orig))
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, IsUniqueViolation(&fakePGErr{state: "23505"}))
	assert.False(t, IsUniqueViolation(&fakePGErr{state: "23503"}))
	assert.False(t, IsUniqueViolation(errors.New("x")))
}
