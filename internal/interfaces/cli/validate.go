package cli

import (
	"encoding/json"
	"errors"

	"github.com/spf13/cobra"

	"github.com/jhoicas/xrechnung-api/internal/application/dto"
	domxr "github.com/jhoicas/xrechnung-api/internal/domain/xrechnung"
)

// errInvalid salida distinta de cero cuando el informe no es válido.
var errInvalid = errors.New("la factura no supera el control estructural")

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [invoice.json]",
		Short: "Comprueba los términos de negocio obligatorios (no sustituye a KoSIT)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := readInvoice(cmd, args[0])
			if err != nil {
				return err
			}
			report := domxr.Validate(req.ToEntity())
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(dto.ValidationResponse{Valid: report.Valid, Errors: report.Errors}); err != nil {
				return err
			}
			if !report.Valid {
				return errInvalid
			}
			return nil
		},
	}
}
