package main

import (
	"os"

	"github.com/joho/godotenv"
)

// defaultCacheDB resolves the pattern cache's default DSN: an explicit
// $GLSLX_CACHE_DB (optionally sourced from a .env file in the working
// directory) or, absent both, ":memory:". A missing .env file is not an
// error — godotenv.Load is best-effort, matching how a .env-less checkout
// of the teacher's own tooling runs fine without one.
func defaultCacheDB() string {
	_ = godotenv.Load()
	if v := os.Getenv("GLSLX_CACHE_DB"); v != "" {
		return v
	}
	return ":memory:"
}
