package redis

import (
	"testing"
	"time"

	"fraud-data-simulator/internal/config"
	"fraud-data-simulator/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)

	cfg := &config.Config{
		Redis: config.RedisConfig{
			Host: mr.Host(),
			Port: mr.Port(),
		},
	}

	client, err := NewClient(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	return client, mr
}

func TestNewClient_Unavailable(t *testing.T) {
	mr := miniredis.RunT(t)
	host, port := mr.Host(), mr.Port()
	mr.Close()

	_, err := NewClient(&config.Config{Redis: config.RedisConfig{Host: host, Port: port}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to connect to Redis")
}

func TestClient_SaveAndGetRunSummary(t *testing.T) {
	client, mr := setupTestRedis(t)

	summary := &models.DatasetSummary{
		RunID:          "run_1",
		OutputPath:     "output/fraud_data.csv",
		TotalRecords:   1000,
		ChunkSize:      400,
		RecordsWritten: 1000,
		ChunksFlushed:  3,
		FraudCount:     24,
		FraudRate:      0.024,
		RiskLevels:     map[string]int{"low": 900, "medium": 70, "high": 30},
		Seed:           42,
	}

	require.NoError(t, client.SaveRunSummary(summary))
	assert.True(t, mr.Exists("dataset:run_1:summary"))
	assert.Equal(t, SummaryTTL, mr.TTL("dataset:run_1:summary"))

	got, err := client.GetRunSummary("run_1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 1000, got.RecordsWritten)
	assert.Equal(t, 24, got.FraudCount)
	assert.Equal(t, 30, got.RiskLevels["high"])
}

func TestClient_GetRunSummary_NotFound(t *testing.T) {
	client, _ := setupTestRedis(t)

	got, err := client.GetRunSummary("missing")
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestClient_RunSummaryTTL(t *testing.T) {
	client, mr := setupTestRedis(t)

	require.NoError(t, client.SaveRunSummary(&models.DatasetSummary{RunID: "run_ttl"}))
	mr.FastForward(SummaryTTL + time.Second)

	got, err := client.GetRunSummary("run_ttl")
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestClient_IncrementRiskStats(t *testing.T) {
	client, _ := setupTestRedis(t)

	require.NoError(t, client.IncrementRiskStats("run_1", map[string]int{"low": 350, "medium": 40, "high": 10}))
	require.NoError(t, client.IncrementRiskStats("run_2", map[string]int{"low": 5, "high": 1}))

	global, err := client.GetRiskStats()
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"low": 355, "medium": 40, "high": 11}, global)

	perRun, err := client.GetRunRiskStats("run_1")
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"low": 350, "medium": 40, "high": 10}, perRun)
}

func TestClient_GetRunRiskStats_Parsing(t *testing.T) {
	client, mr := setupTestRedis(t)

	perRun, err := client.GetRunRiskStats("unknown")
	require.NoError(t, err)
	assert.Empty(t, perRun)

	// Только целые десятичные значения, без пробелов и хвостов
	mr.HSet(runRiskStatsKey("run_bad"), "low", "12abc")
	_, err = client.GetRunRiskStats("run_bad")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid counter low="12abc"`)

	mr.HSet(runRiskStatsKey("run_space"), "high", " 7")
	_, err = client.GetRunRiskStats("run_space")
	require.Error(t, err)

	mr.HSet(runRiskStatsKey("run_big"), "low", "9000000000")
	perRun, err = client.GetRunRiskStats("run_big")
	require.NoError(t, err)
	assert.Equal(t, int64(9000000000), perRun["low"])
}

func TestClient_IncrementRiskStats_Empty(t *testing.T) {
	client, mr := setupTestRedis(t)

	require.NoError(t, client.IncrementRiskStats("run_1", nil))
	assert.Empty(t, mr.Keys())
}

func TestClient_IncrementFraudStats(t *testing.T) {
	client, _ := setupTestRedis(t)

	require.NoError(t, client.IncrementFraudStats(map[string]int{"financial": 7, "online": 2}))
	require.NoError(t, client.IncrementFraudStats(map[string]int{"financial": 1}))

	stats, err := client.GetFraudStats()
	require.NoError(t, err)
	assert.Equal(t, int64(8), stats["financial"])
	assert.Equal(t, int64(2), stats["online"])
}

func TestClient_ClearDatasetData(t *testing.T) {
	client, mr := setupTestRedis(t)

	require.NoError(t, client.SaveRunSummary(&models.DatasetSummary{RunID: "run_1"}))
	require.NoError(t, client.IncrementRiskStats("run_1", map[string]int{"low": 1}))
	require.NoError(t, client.IncrementFraudStats(map[string]int{"online": 1}))
	require.NoError(t, mr.Set("unrelated", "keep"))

	require.NoError(t, client.ClearDatasetData())

	assert.Equal(t, []string{"unrelated"}, mr.Keys())
}

func TestClient_Close(t *testing.T) {
	mr := miniredis.RunT(t)
	client, err := NewClient(&config.Config{Redis: config.RedisConfig{Host: mr.Host(), Port: mr.Port()}})
	require.NoError(t, err)

	assert.NoError(t, client.Close())
}
