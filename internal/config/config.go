package config

import (
	"github.com/Bridgeless-Project/ton-kit/internal/chain/ton"
	"github.com/Bridgeless-Project/ton-kit/internal/secrets"
	"github.com/Bridgeless-Project/ton-kit/internal/secrets/vault"
	vaulter "github.com/Bridgeless-Project/ton-kit/internal/secrets/vault/config"
	"github.com/Bridgeless-Project/ton-kit/internal/watcher"
	"gitlab.com/distributed_lab/kit/comfig"
	"gitlab.com/distributed_lab/kit/kv"
	"gitlab.com/distributed_lab/kit/pgdb"
)

type Config interface {
	comfig.Logger
	comfig.Listenerer
	pgdb.Databaser
	ton.Tonner
	watcher.Watcherer
	vaulter.Vaulter

	SecretsStorage() secrets.Storage
}

type config struct {
	getter kv.Getter

	comfig.Logger
	comfig.Listenerer
	pgdb.Databaser
	ton.Tonner
	watcher.Watcherer
	vaulter.Vaulter
}

func New(getter kv.Getter) Config {
	return &config{
		getter: getter,

		Logger:     comfig.NewLogger(getter, comfig.LoggerOpts{}),
		Listenerer: comfig.NewListenerer(getter),
		Databaser:  pgdb.NewDatabaser(getter),
		Tonner:     ton.NewTonner(getter),
		Watcherer:  watcher.NewWatcherer(getter),
		Vaulter:    vaulter.NewVaulter(),
	}
}

func (c *config) SecretsStorage() secrets.Storage {
	return vault.NewStorage(c.VaultClient(), c.SecretPath())
}
