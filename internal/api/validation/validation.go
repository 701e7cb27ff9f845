package validation

import (
	"fmt"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/krishpatel1827/EduSync/internal/model"
)

var registerOnce sync.Once

// Register 向 gin 的校验引擎注册自定义标签（可重复调用）
//
//	hhmm: 字符串须为 "HH:MM" 或 "HH:MM:SS" 墙上时钟时间
func Register() error {
	var err error
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			err = fmt.Errorf("gin 校验引擎类型异常: %T", binding.Validator.Engine())
			return
		}
		err = v.RegisterValidation("hhmm", validateHHMM)
	})
	return err
}

func validateHHMM(fl validator.FieldLevel) bool {
	_, err := model.ParseClock(fl.Field().String())
	return err == nil
}
