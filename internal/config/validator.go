package config

import (
	"fmt"
	"os"
	"reflect"
	"slices"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
)

func newValidator() (*validator.Validate, ut.Translator, error) {
	validate := validator.New()

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ := uni.GetTranslator("en")
	if err := enTranslations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, nil, fmt.Errorf("failed to register default translations: %w", err)
	}

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := validate.RegisterValidation("file", isFileReadable); err != nil {
		return nil, nil, fmt.Errorf("failed to register file validation: %w", err)
	}
	if err := validate.RegisterTranslation("file", trans, func(ut ut.Translator) error {
		return ut.Add("file", "{0} must be an existing and readable file", true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T("file", strings.TrimPrefix(fe.Namespace(), "Config."))
		return t
	}); err != nil {
		return nil, nil, fmt.Errorf("failed to register file translation: %w", err)
	}

	if err := validate.RegisterValidation("storage_kind", isStorageKind); err != nil {
		return nil, nil, fmt.Errorf("failed to register storage_kind validation: %w", err)
	}
	if err := validate.RegisterTranslation("storage_kind", trans, func(ut ut.Translator) error {
		return ut.Add("storage_kind", "{0} must be one of {1}, got {2}", true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T("storage_kind",
			strings.TrimPrefix(fe.Namespace(), "Config."),
			strings.Join(StorageKinds, ", "),
			fmt.Sprintf("%q", fe.Value()),
		)
		return t
	}); err != nil {
		return nil, nil, fmt.Errorf("failed to register storage_kind translation: %w", err)
	}

	return validate, trans, nil
}

// StorageKinds lists the backends storage.kind accepts, in the order they
// are shown to the user.
var StorageKinds = []string{"memory", "yaml", "sqlite", "mysql"}

func isStorageKind(fl validator.FieldLevel) bool {
	return slices.Contains(StorageKinds, fl.Field().String())
}

func isFileReadable(fl validator.FieldLevel) bool {
	path := fl.Field().String()
	if path == "" {
		return false
	}

	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	if info.IsDir() {
		return false
	}

	// owner read bit
	return info.Mode().Perm()&0o400 != 0
}
