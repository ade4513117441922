// file: internals/helpers/from_error.go
package helper

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// JsonFromError merutekan error apa pun ke envelope JSON yang konsisten:
// *fiber.Error (dari helper auth/route) pakai code bawaannya, sisanya
// dipetakan lewat taksonomi errs.
func JsonFromError(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return JsonError(c, fe.Code, fe.Message)
	}
	return JsonAppError(c, err)
}
