package errors

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/julianstephens/diario/internal/diary"
	"github.com/julianstephens/diario/internal/logger"
	"github.com/julianstephens/diario/internal/validation"
)

// Format formats an error message with a consistent "Error: " prefix. Invalid
// fields are listed one per line below the message.
func Format(err error) string {
	if err == nil {
		return ""
	}
	msg := fmt.Sprintf("Error: %v", err)

	var verr *validation.Error
	if errors.As(err, &verr) && len(verr.Fields) > 1 {
		names := make([]string, 0, len(verr.Fields))
		for name := range verr.Fields {
			names = append(names, name)
		}
		sort.Strings(names)
		var b strings.Builder
		b.WriteString(msg)
		for _, name := range names {
			fmt.Fprintf(&b, "\n  - %s: %s", name, verr.Fields[name])
		}
		return b.String()
	}
	return msg
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...any) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Status turns an error into the short message shown in the editor status line.
func Status(err error) string {
	var verr *validation.Error
	switch {
	case err == nil:
		return ""
	case errors.Is(err, diary.ErrInvalidBackup):
		return "Arquivo de backup inválido"
	case errors.As(err, &verr):
		if _, ok := verr.Fields["title"]; ok {
			return "Preencha a data e o título do evento"
		}
		if _, ok := verr.Fields["date"]; ok {
			return "Data inválida"
		}
		return "Dados inválidos"
	default:
		return "Erro ao salvar: " + err.Error()
	}
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}
