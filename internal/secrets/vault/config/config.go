package config

import (
	"cmp"
	"os"

	vault "github.com/hashicorp/vault/api"
	"github.com/pkg/errors"
	"gitlab.com/distributed_lab/kit/comfig"
)

const (
	VaultPathEnv       = "VAULT_PATH"
	VaultTokenEnv      = "VAULT_TOKEN"
	VaultMountPath     = "MOUNT_PATH"
	VaultSecretPathEnv = "SECRET_PATH"

	defaultMountPath  = "secret"
	defaultSecretPath = "ton-kit"
)

type Vaulter interface {
	VaultClient() *vault.KVv2
	// SecretPath is the prefix all secrets of this service are stored under.
	SecretPath() string
}

type vaulter struct {
	once comfig.Once
}

func NewVaulter() Vaulter {
	return &vaulter{}
}

func (v *vaulter) VaultClient() *vault.KVv2 {
	return v.once.Do(func() interface{} {
		conf := vault.DefaultConfig()
		conf.Address = os.Getenv(VaultPathEnv)
		if conf.Address == "" {
			panic(errors.Errorf("%s is not set", VaultPathEnv))
		}

		client, err := vault.NewClient(conf)
		if err != nil {
			panic(errors.Wrap(err, "failed to create vault client"))
		}

		client.SetToken(os.Getenv(VaultTokenEnv))

		return client.KVv2(cmp.Or(os.Getenv(VaultMountPath), defaultMountPath))
	}).(*vault.KVv2)
}

func (v *vaulter) SecretPath() string {
	return cmp.Or(os.Getenv(VaultSecretPathEnv), defaultSecretPath)
}
