package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jhoicas/xrechnung-api/internal/application/einvoice"
	"github.com/jhoicas/xrechnung-api/internal/infrastructure/xrechnung"
)

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate [invoice.json]",
		Short: "Genera el XML CII de una factura",
		Example: `  # XML a stdout
  xrechnung generate rechnung.json

  # Archivar en ./invoices/xrechnung/<número>_xrechnung.xml
  xrechnung generate rechnung.json --archive ./invoices

  # Rechazar si faltan términos obligatorios
  xrechnung generate rechnung.json --strict -o rechnung.xml`,
		Args: cobra.ExactArgs(1),
		RunE: runGenerate,
	}
	cmd.Flags().StringP("output", "o", "", "archivo de salida (por defecto stdout)")
	cmd.Flags().String("archive", "", "directorio raíz de archivo; activa la exportación completa")
	cmd.Flags().Bool("strict", false, "no generar si la validación estructural falla")
	cmd.Flags().String("specification", "", "BT-24 (por defecto XRechnung 3.0)")
	return cmd
}

func runGenerate(cmd *cobra.Command, args []string) error {
	log := cmdLogger(cmd, "generate")
	outputPath, _ := cmd.Flags().GetString("output")
	archiveRoot, _ := cmd.Flags().GetString("archive")
	strict, _ := cmd.Flags().GetBool("strict")
	spec, _ := cmd.Flags().GetString("specification")

	req, err := readInvoice(cmd, args[0])
	if err != nil {
		return err
	}
	deps := einvoice.Deps{
		Generator: xrechnung.NewGenerator(spec),
		Logger:    log,
		Strict:    strict,
	}
	if archiveRoot != "" {
		deps.Archive = xrechnung.NewFileArchive(archiveRoot)
	}
	svc := einvoice.NewService(deps)
	inv := req.ToEntity()

	if archiveRoot != "" {
		res, err := svc.Export(cmd.Context(), inv)
		if err != nil {
			return err
		}
		warnReport(cmd, res.Report.Errors)
		fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", res.SHA256, res.Path)
		return nil
	}

	res, err := svc.Generate(cmd.Context(), inv)
	if err != nil {
		return err
	}
	warnReport(cmd, res.Report.Errors)
	if outputPath == "" {
		_, err = fmt.Fprint(cmd.OutOrStdout(), res.XML)
		return err
	}
	if err := os.WriteFile(outputPath, []byte(res.XML), 0o644); err != nil {
		return fmt.Errorf("escribir %s: %w", outputPath, err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "%s  %s\n", res.SHA256, outputPath)
	return nil
}

func warnReport(cmd *cobra.Command, errs []string) {
	for _, e := range errs {
		fmt.Fprintf(cmd.ErrOrStderr(), "aviso: %s\n", e)
	}
}
