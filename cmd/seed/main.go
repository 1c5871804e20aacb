// seed crea un vendedor y su usuario OWNER para arrancar un entorno.
//
// Uso: go run ./cmd/seed -name "Mi Tienda" -email dueno@tienda.com -password secreta123 -tier STANDARD
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/jhoicas/Inventario-ventas/internal/application/auth"
	"github.com/jhoicas/Inventario-ventas/internal/domain/entity"
	"github.com/jhoicas/Inventario-ventas/internal/infrastructure/postgres"
	"github.com/jhoicas/Inventario-ventas/pkg/config"
)

func main() {
	name := flag.String("name", "", "nombre de la tienda")
	email := flag.String("email", "", "email del usuario OWNER")
	password := flag.String("password", "", "contraseña (mínimo 8 caracteres)")
	owner := flag.String("owner", "", "nombre del usuario OWNER")
	tier := flag.String("tier", entity.TierFree, "plan: FREE, STANDARD o PREMIUM")
	flag.Parse()

	if err := run(*name, *email, *password, *owner, *tier); err != nil {
		fmt.Fprintf(os.Stderr, "seed: %v\n", err)
		os.Exit(1)
	}
}

func run(name, email, password, owner, tier string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("cargar configuración: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	defer pool.Close()

	uc := auth.NewAuthUseCase(postgres.NewUserRepository(pool), postgres.NewSellerRepository(pool), auth.JWTConfig{
		Secret: cfg.JWT.Secret, ExpMinutes: cfg.JWT.Expiration, Issuer: cfg.JWT.Issuer,
	})
	seller, user, err := uc.RegisterSeller(ctx, auth.RegisterSellerInput{
		SellerName: name, Tier: tier, Email: email, Password: password, OwnerName: owner,
	})
	if err != nil {
		return err
	}
	fmt.Printf("vendedor %s (%s) creado\nusuario OWNER %s <%s>\n", seller.Name, seller.ID, user.ID, user.Email)
	return nil
}
