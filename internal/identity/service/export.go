package service

import (
	"context"
	"encoding/csv"
	"io"
	"strings"

	"github.com/aussiebroadwan/identity/internal/identity/store"
)

var exportHeader = []string{"Username", "Email", "First Name", "Last Name", "Birthday", "Roles"}

// Export writes every account as CSV, draining the store page by page.
func (s *AccountService) Export(ctx context.Context, w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return err
	}

	for a, err := range store.All(ctx, s.ExportPageSize, s.Store.Accounts().Page) {
		if err != nil {
			return err
		}

		birthday := ""
		if a.Birthday != nil {
			birthday = a.Birthday.Format("2006-01-02")
		}
		if err := cw.Write([]string{
			a.Username,
			a.Email,
			a.FirstName,
			a.LastName,
			birthday,
			strings.Join(a.Roles.Strings(), " "),
		}); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
