package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/xrechnung-api/pkg/config"
	"github.com/jhoicas/xrechnung-api/pkg/jwt"
)

// newTokenCmd emite un token de servicio firmado con JWT_SECRET. Pensado para
// despliegues sin base de datos, donde /auth/login no existe.
func newTokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Emite un JWT de servicio con la configuración del servidor",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			user, _ := cmd.Flags().GetString("user")
			tenant, _ := cmd.Flags().GetString("tenant")
			role, _ := cmd.Flags().GetString("role")
			ttl, _ := cmd.Flags().GetInt("ttl")
			if !jwt.ValidRole(role) {
				return fmt.Errorf("rol desconocido: %s", role)
			}
			if ttl <= 0 {
				ttl = cfg.JWT.Expiration
			}
			tok, err := jwt.Generate(cfg.JWT.Secret, user, tenant, role, cfg.JWT.Issuer, ttl)
			if err != nil {
				return err
			}
			cmdLogger(cmd, "token").Info().Str("user", user).Str("role", role).Int("ttl_min", ttl).Msg("token emitido")
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}
	cmd.Flags().String("user", "service", "user_id del token")
	cmd.Flags().String("tenant", "", "mandante emisor")
	cmd.Flags().String("role", jwt.RoleViewer, "rol (admin, buchhaltung, viewer)")
	cmd.Flags().Int("ttl", 0, "validez en minutos (0 = JWT_EXPIRATION_MINUTES)")
	return cmd
}
