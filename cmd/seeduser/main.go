// cmd/seeduser — creates or resets the default admin account in users.json.
// Usage: go run ./cmd/seeduser [data-dir]
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/Masai2005/zero-app/internal/model"
	"github.com/Masai2005/zero-app/internal/repository"
	"github.com/Masai2005/zero-app/internal/storage"
)

func main() {
	dataDir := "data"
	if len(os.Args) > 1 {
		dataDir = os.Args[1]
	}
	username := "admin"
	password := "admin123"

	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		fmt.Fprintf(os.Stderr, "bcrypt error: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.New(dataDir, zerolog.Nop())
	if err != nil {
		fmt.Fprintf(os.Stderr, "open data dir: %v\n", err)
		os.Exit(1)
	}
	if err := store.InitDataFiles(); err != nil {
		fmt.Fprintf(os.Stderr, "init data files: %v\n", err)
		os.Exit(1)
	}

	users := repository.NewUserRepository(store)
	err = users.Upsert(username, model.User{
		PasswordHash: string(hash),
		Type:         model.UserTypeAdmin,
		Name:         "Administrator",
		CreatedAt:    time.Now(),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "write user: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("user '%s' created/updated with password '%s'\n", username, password)
}
