package config

import (
	"bytes"
	"testing"
	"time"

	"github.com/pkg/errors"
)

func TestLoadFile(t *testing.T) {
	getEnv = func(key string) string {
		return map[string]string{
			"TEST_SESSION_KEY": "secret",
			"TEST_S3_ENDPOINT": "localhost:9000",
		}[key]
	}

	conf := NewDefaultConfig()

	if err := LoadFile("testdata/config.yml", conf); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := -4, int(conf.Logger.Level); e != g {
		t.Errorf("conf.Logger.Level: expected '%v', got '%v'", e, g)
	}

	if e, g := ":9090", string(conf.HTTP.Address); e != g {
		t.Errorf("conf.HTTP.Address: expected '%v', got '%v'", e, g)
	}

	if e, g := 1, len(conf.HTTP.Session.Keys); e != g {
		t.Fatalf("len(conf.HTTP.Session.Keys): expected '%v', got '%v'", e, g)
	}

	if e, g := "secret", conf.HTTP.Session.Keys[0]; e != g {
		t.Errorf("conf.HTTP.Session.Keys[0]: expected '%v', got '%v'", e, g)
	}

	if e, g := time.Hour, time.Duration(*conf.HTTP.Session.TTL); e != g {
		t.Errorf("conf.HTTP.Session.TTL: expected '%v', got '%v'", e, g)
	}

	if e, g := "s3", string(conf.Theme.Storage.Type); e != g {
		t.Errorf("conf.Theme.Storage.Type: expected '%v', got '%v'", e, g)
	}

	if e, g := "localhost:9000", conf.Theme.Storage.Options.Data["endpoint"]; e != g {
		t.Errorf("conf.Theme.Storage.Options.Data[\"endpoint\"]: expected '%v', got '%v'", e, g)
	}

	if e, g := 10*time.Minute, time.Duration(*conf.Theme.IdleTimeout); e != g {
		t.Errorf("conf.Theme.IdleTimeout: expected '%v', got '%v'", e, g)
	}

	if e, g := "seller", string(conf.Auth.DefaultRole); e != g {
		t.Errorf("conf.Auth.DefaultRole: expected '%v', got '%v'", e, g)
	}

	if e, g := 1, len(conf.Auth.Roles); e != g {
		t.Fatalf("len(conf.Auth.Roles): expected '%v', got '%v'", e, g)
	}

	if e, g := `email == "admin@example.com"`, string(conf.Auth.Roles[0].Rule); e != g {
		t.Errorf("conf.Auth.Roles[0].Rule: expected '%v', got '%v'", e, g)
	}

	if e, g := "test.db", string(conf.Store.Path); e != g {
		t.Errorf("conf.Store.Path: expected '%v', got '%v'", e, g)
	}
}

func TestDump(t *testing.T) {
	var buff bytes.Buffer

	if err := Dump(&buff, NewDefaultConfig()); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	dumped := buff.String()

	for _, expected := range []string{"SYSCOMMERCE_HTTP_ADDRESS", "SYSCOMMERCE_THEME_STORAGE_TYPE", "SYSCOMMERCE_STORE_PATH"} {
		if !bytes.Contains(buff.Bytes(), []byte(expected)) {
			t.Errorf("dumped config: expected '%s' in\n%s", expected, dumped)
		}
	}
}
