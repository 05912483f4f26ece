package s3

import (
	"github.com/bornholm/syscommerce/internal/theme/storage"
	"github.com/go-viper/mapstructure/v2"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pkg/errors"
)

const Type storage.Type = "s3"

func init() {
	storage.Register(Type, CreateBackendFromOptions)
}

type Options struct {
	Endpoint string `mapstructure:"endpoint" yaml:"endpoint"`
	User     string `mapstructure:"user" yaml:"user"`
	Secret   string `mapstructure:"secret" yaml:"secret"`
	Token    string `mapstructure:"token" yaml:"token"`
	Secure   bool   `mapstructure:"secure" yaml:"secure"`
	Region   string `mapstructure:"region" yaml:"region"`
	Bucket   string `mapstructure:"bucket" yaml:"bucket"`
	Prefix   string `mapstructure:"prefix" yaml:"prefix"`
}

func CreateBackendFromOptions(options any) (storage.Backend, error) {
	opts := Options{
		Prefix: "preferences",
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &opts,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "could not create '%s' storage options decoder", Type)
	}

	if err := decoder.Decode(options); err != nil {
		return nil, errors.Wrapf(err, "could not parse '%s' storage options", Type)
	}

	if opts.Bucket == "" {
		return nil, errors.Errorf("'%s' storage requires a bucket", Type)
	}

	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.User, opts.Secret, opts.Token),
		Secure: opts.Secure,
		Region: opts.Region,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "could not create '%s' storage client", Type)
	}

	return NewBackend(client, opts.Bucket, opts.Prefix, opts.Region), nil
}
