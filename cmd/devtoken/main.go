// Command devtoken prints an access token signed with the configured JWT secret,
// for calling the API locally without the identity provider.
package main

import (
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/barbershop-api/internal/config"
	"github.com/sangkips/barbershop-api/pkg/utils"
)

const ownerPermissions = "manage-barbershop,view-reports,manage-professionals,manage-services,manage-bookings,manage-commissions,manage-payouts"

func main() {
	barbershop := flag.String("barbershop", "", "barbershop id the token is bound to")
	email := flag.String("email", "owner@example.com", "email claim")
	roles := flag.String("roles", "owner", "comma separated roles (super-admin for the platform console)")
	permissions := flag.String("permissions", ownerPermissions, "comma separated permissions")
	flag.Parse()

	cfg := config.Load()

	subject := utils.TokenSubject{
		UserID:      uuid.New(),
		Email:       *email,
		Roles:       splitList(*roles),
		Permissions: splitList(*permissions),
	}
	if *barbershop != "" {
		id, err := uuid.Parse(*barbershop)
		if err != nil {
			log.Fatalf("Invalid barbershop id: %v", err)
		}
		subject.BarbershopID = &id
	}

	token, err := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.ExpiryHours).GenerateAccessToken(subject)
	if err != nil {
		log.Fatalf("Failed to sign token: %v", err)
	}
	fmt.Println(token)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
