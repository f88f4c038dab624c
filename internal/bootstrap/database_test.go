package bootstrap

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/txpay/txpay-admin/config"
)

func TestConnectRedis_NotConfigured(t *testing.T) {
	client, err := ConnectRedis(context.Background(), DatabaseConfig{})

	require.NoError(t, err)
	assert.Nil(t, client)
}

func TestRedisOptions(t *testing.T) {
	tests := []struct {
		name         string
		cfg          config.RedisConfig
		wantTopology redisTopology
		wantAddrs    []string
		wantPassword string
		wantDB       int
		wantErr      string
	}{
		{
			name:         "url carries credentials and db",
			cfg:          config.RedisConfig{URI: "redis://:secret@cache.internal:6380/2", Password: "ignored"},
			wantTopology: redisDirect,
			wantAddrs:    []string{"cache.internal:6380"},
			wantPassword: "secret",
			wantDB:       2,
		},
		{
			name:         "bare address",
			cfg:          config.RedisConfig{URI: " cache.internal:6379 ", Password: "pw", DB: 3},
			wantTopology: redisDirect,
			wantAddrs:    []string{"cache.internal:6379"},
			wantPassword: "pw",
			wantDB:       3,
		},
		{name: "blank uri", cfg: config.RedisConfig{URI: "  "}, wantErr: "requires a URI"},
		{
			name:         "cluster nodes",
			cfg:          config.RedisConfig{UseCluster: true, ClusterNodes: []string{" a:7000 ", "", "b:7001"}},
			wantTopology: redisCluster,
			wantAddrs:    []string{"a:7000", "b:7001"},
		},
		{
			name:         "cluster falls back to the uri",
			cfg:          config.RedisConfig{UseCluster: true, URI: "rediss://user:pw@seed:7000"},
			wantTopology: redisCluster,
			wantAddrs:    []string{"seed:7000"},
			wantPassword: "pw",
		},
		{name: "cluster without nodes", cfg: config.RedisConfig{UseCluster: true}, wantErr: "at least one address"},
		{
			name:         "sentinel",
			cfg:          config.RedisConfig{UseSentinel: true, SentinelNodes: []string{"s1:26379"}, SentinelMasterName: "txpay"},
			wantTopology: redisSentinel,
			wantAddrs:    []string{"s1:26379"},
		},
		{name: "sentinel without nodes", cfg: config.RedisConfig{UseSentinel: true}, wantErr: "sentinel node"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, topology, err := redisOptions(tt.cfg)
			if tt.wantErr != "" {
				require.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantTopology, topology)
			assert.Equal(t, tt.wantAddrs, opts.Addrs)
			assert.Equal(t, tt.wantPassword, opts.Password)
			assert.Equal(t, tt.wantDB, opts.DB)
			assert.Equal(t, "txpay-admin", opts.ClientName)
		})
	}
}

func TestRedisOptions_SentinelMaster(t *testing.T) {
	opts, _, err := redisOptions(config.RedisConfig{
		UseSentinel: true, SentinelNodes: []string{"s1:26379"}, SentinelMasterName: "txpay", SentinelPassword: "spw",
	})
	require.NoError(t, err)
	assert.Equal(t, "txpay", opts.MasterName)
	assert.Equal(t, "spw", opts.SentinelPassword)
}

func TestRedisOptions_TLSFromURL(t *testing.T) {
	opts, _, err := redisOptions(config.RedisConfig{URI: "rediss://cache.internal:6380"})
	require.NoError(t, err)
	assert.NotNil(t, opts.TLSConfig)
}

func TestPostgresDSN(t *testing.T) {
	dsn := postgresDSN(config.DBConfig{Host: "db", Port: 5432, User: "txpay", Password: "p@ss/word", Name: "txpay_admin", SSLMode: "require"})
	assert.Equal(t, "postgres://txpay:p%40ss%2Fword@db:5432/txpay_admin?sslmode=require", dsn)
}
