package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/d60-Lab/pos-service/pkg/apperr"
)

// classify 把驱动层约束错误翻译为类型化业务错误。
// 依赖 gorm 的 TranslateError：唯一键冲突 → ErrDuplicatedKey，
// 外键冲突 → ErrForeignKeyViolated。上层不得匹配错误文本。
func classify(err error, conflictMsg string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperr.Wrap(apperr.KindConflict, conflictMsg, err)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return apperr.Wrap(apperr.KindConstraint, "operation violates a foreign key constraint", err)
	default:
		return err
	}
}
