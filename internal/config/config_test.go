package config

import (
	"os"
	"strings"
	"testing"
	"time"
)

// setEnv clears the environment and sets the given pairs.
func setEnv(t *testing.T, kv ...string) {
	t.Helper()
	os.Clearenv()
	os.Setenv("GRPC_ADDR", ":8080")
	for i := 0; i+1 < len(kv); i += 2 {
		os.Setenv(kv[i], kv[i+1])
	}
}

func TestLoad_Defaults(t *testing.T) {
	setEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.GRPCAddr != ":8080" {
		t.Errorf("GRPCAddr = %q, want %q", cfg.GRPCAddr, ":8080")
	}
	if cfg.DatabaseDriver != "postgres" {
		t.Errorf("DatabaseDriver = %q, want postgres", cfg.DatabaseDriver)
	}
	if cfg.JWTIssuer != "taskboard-auth" {
		t.Errorf("JWTIssuer = %q, want %q", cfg.JWTIssuer, "taskboard-auth")
	}
	if cfg.JWTAudience != "taskboard-api" {
		t.Errorf("JWTAudience = %q, want %q", cfg.JWTAudience, "taskboard-api")
	}
	if cfg.AccessTTL() != 24*time.Hour {
		t.Errorf("AccessTTL = %v, want 24h", cfg.AccessTTL())
	}
	if cfg.BcryptCost != 12 {
		t.Errorf("BcryptCost = %d, want 12", cfg.BcryptCost)
	}
	if cfg.VerificationStore != "memory" {
		t.Errorf("VerificationStore = %q, want memory", cfg.VerificationStore)
	}
	if cfg.CodeTTL() != 10*time.Minute {
		t.Errorf("CodeTTL = %v, want 10m", cfg.CodeTTL())
	}
	if cfg.CodeDelivery != "log" {
		t.Errorf("CodeDelivery = %q, want log", cfg.CodeDelivery)
	}
	if cfg.SMTPPort != 587 {
		t.Errorf("SMTPPort = %d, want 587", cfg.SMTPPort)
	}
	if cfg.TelemetryKafkaTopic != "taskboard-telemetry" {
		t.Errorf("TelemetryKafkaTopic = %q", cfg.TelemetryKafkaTopic)
	}
	if cfg.DBAutoSchema {
		t.Error("DBAutoSchema should default to false")
	}
}

func TestLoad_EnvVarOverride(t *testing.T) {
	setEnv(t,
		"GRPC_ADDR", ":9090",
		"JWT_ISSUER", "custom-issuer",
		"BCRYPT_COST", "14",
		"DATABASE_DRIVER", "SQLite",
		"DATABASE_URL", "/tmp/taskboard.db",
		"DB_AUTO_SCHEMA", "true",
		"JWT_PRIVATE_KEY", "pem-private",
	)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.GRPCAddr != ":9090" {
		t.Errorf("GRPCAddr = %q, want %q", cfg.GRPCAddr, ":9090")
	}
	if cfg.JWTIssuer != "custom-issuer" {
		t.Errorf("JWTIssuer = %q, want %q", cfg.JWTIssuer, "custom-issuer")
	}
	if cfg.BcryptCost != 14 {
		t.Errorf("BcryptCost = %d, want 14", cfg.BcryptCost)
	}
	if cfg.DatabaseDriver != "sqlite" {
		t.Errorf("DatabaseDriver = %q, want sqlite", cfg.DatabaseDriver)
	}
	if !cfg.DBAutoSchema {
		t.Error("DBAutoSchema should be true")
	}
	if cfg.JWTPrivateKey != "pem-private" {
		t.Errorf("JWTPrivateKey = %q", cfg.JWTPrivateKey)
	}
}

func TestLoad_BCRYPT_COSTRange(t *testing.T) {
	testCases := []struct {
		name  string
		value string
		want  int
		err   bool
	}{
		{"valid min", "4", 4, false},
		{"valid max", "31", 31, false},
		{"valid middle", "12", 12, false},
		{"too low", "3", 0, true},
		{"too high", "32", 0, true},
		{"zero", "0", 12, false}, // Should default to 12
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			setEnv(t, "BCRYPT_COST", tc.value)

			cfg, err := Load()
			if tc.err {
				if err == nil {
					t.Fatal("Load should return error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if cfg.BcryptCost != tc.want {
				t.Errorf("BcryptCost = %d, want %d", cfg.BcryptCost, tc.want)
			}
		})
	}
}

func TestLoad_Validation(t *testing.T) {
	testCases := []struct {
		name    string
		env     []string
		wantErr string
	}{
		{"unknown driver", []string{"DATABASE_DRIVER", "mysql"}, "DATABASE_DRIVER"},
		{"unknown store", []string{"VERIFICATION_STORE", "etcd"}, "VERIFICATION_STORE"},
		{"redis without url", []string{"VERIFICATION_STORE", "redis"}, "REDIS_URL"},
		{"unknown delivery", []string{"CODE_DELIVERY", "sms"}, "CODE_DELIVERY"},
		{"log delivery in production", []string{"APP_ENV", "production"}, "APP_ENV=production"},
		{"smtp without host", []string{"CODE_DELIVERY", "smtp", "MAIL_FROM", "no-reply@example.com"}, "SMTP_HOST"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			setEnv(t, tc.env...)

			cfg, err := Load()
			if err == nil {
				t.Fatal("Load should return error")
			}
			if cfg != nil {
				t.Error("Load should return nil config on error")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("error = %q, want it to mention %q", err.Error(), tc.wantErr)
			}
		})
	}
}

func TestLoad_ProductionWithSMTP(t *testing.T) {
	setEnv(t,
		"APP_ENV", "production",
		"CODE_DELIVERY", "smtp",
		"SMTP_HOST", "smtp.example.com",
		"SMTP_PORT", "2525",
		"MAIL_FROM", "no-reply@example.com",
		"VERIFICATION_STORE", "redis",
		"REDIS_URL", "redis://localhost:6379/0",
	)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.IsProduction() {
		t.Error("IsProduction should be true")
	}
	if cfg.SMTPPort != 2525 {
		t.Errorf("SMTPPort = %d, want 2525", cfg.SMTPPort)
	}
	if cfg.VerificationStore != "redis" {
		t.Errorf("VerificationStore = %q, want redis", cfg.VerificationStore)
	}
}

func TestDurations_FallBackOnInvalid(t *testing.T) {
	testCases := []struct {
		name  string
		value string
	}{
		{"invalid", "invalid"},
		{"zero", "0"},
		{"negative", "-5m"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			setEnv(t, "JWT_ACCESS_TTL", tc.value, "VERIFICATION_CODE_TTL", tc.value)

			cfg, err := Load()
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if cfg.AccessTTL() != 24*time.Hour {
				t.Errorf("AccessTTL = %v, want 24h", cfg.AccessTTL())
			}
			if cfg.CodeTTL() != 10*time.Minute {
				t.Errorf("CodeTTL = %v, want 10m", cfg.CodeTTL())
			}
		})
	}
}

func TestDurations_Valid(t *testing.T) {
	setEnv(t, "JWT_ACCESS_TTL", "30m", "VERIFICATION_CODE_TTL", "90s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.AccessTTL() != 30*time.Minute {
		t.Errorf("AccessTTL = %v, want 30m", cfg.AccessTTL())
	}
	if cfg.CodeTTL() != 90*time.Second {
		t.Errorf("CodeTTL = %v, want 90s", cfg.CodeTTL())
	}
}

func TestTelemetryKafkaBrokersList(t *testing.T) {
	testCases := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", nil},
		{"single", "localhost:9092", []string{"localhost:9092"}},
		{"trims and skips blanks", " a:9092, ,b:9092 ", []string{"a:9092", "b:9092"}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := (&Config{TelemetryKafkaBrokers: tc.in}).TelemetryKafkaBrokersList()
			if len(got) != len(tc.want) {
				t.Fatalf("len = %d, want %d (%v)", len(got), len(tc.want), got)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Errorf("[%d] = %q, want %q", i, got[i], tc.want[i])
				}
			}
		})
	}
	var nilCfg *Config
	if nilCfg.TelemetryKafkaBrokersList() != nil {
		t.Error("nil config should yield nil list")
	}
}
