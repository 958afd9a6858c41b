package testutil

import (
	"database/sql"
	"fmt"
	"sync"
	"testing"
	"time"

	"jyotish/backend/internal/db"
	"jyotish/backend/internal/model"
	"jyotish/backend/pkg/snowflake"

	_ "modernc.org/sqlite"
)

// snowflakeOnce 确保 snowflake 在所有并行测试中只初始化一次
var snowflakeOnce sync.Once

// NewTestDB 创建内存 SQLite 数据库并执行所有迁移
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()

	// 线程安全地只初始化一次 snowflake
	snowflakeOnce.Do(func() {
		if err := snowflake.Init(0); err != nil {
			// sync.Once 内无法使用 t.Fatalf，改用 panic
			panic("failed to initialize snowflake: " + err.Error())
		}
	})

	// 使用共享缓存模式以支持内存数据库的并发访问
	// 每个测试使用唯一的数据库名称以避免冲突
	dbName := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared&_pragma=foreign_keys(1)", t.Name(), time.Now().UnixNano())
	database, err := sql.Open("sqlite", dbName)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	// 内存数据库在最后一个连接关闭时消失，串行化连接池保证其存活
	database.SetMaxOpenConns(1)

	if err := db.Migrate(database); err != nil {
		database.Close()
		t.Fatalf("failed to migrate test database: %v", err)
	}

	t.Cleanup(func() {
		database.Close()
	})

	return database
}

// SeedCredential 插入测试凭证数据并返回其 ID
func SeedCredential(t *testing.T, database *sql.DB, cred model.Credential) int64 {
	t.Helper()

	id := cred.ID
	if id == 0 {
		id = snowflake.NextID()
	}
	now := time.Now().UTC().Format(time.RFC3339Nano)

	_, err := database.Exec(`
		INSERT INTO credentials (id, kind, identifier, label, description, limit_minute, limit_day, limit_month, active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, id, string(cred.Kind), cred.Identifier, cred.Label, ptrVal(cred.Description),
		cred.LimitMinute, cred.LimitDay, cred.LimitMonth, boolToInt(cred.Active), now, now)
	if err != nil {
		t.Fatalf("failed to seed credential: %v", err)
	}
	return id
}

// SeedUsageCounter 插入一条使用计数行
func SeedUsageCounter(t *testing.T, database *sql.DB, credentialID int64, kind model.WindowKind, windowStart time.Time, count int64) {
	t.Helper()

	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err := database.Exec(`
		INSERT INTO usage_counters (id, credential_id, window_kind, window_start, count, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, snowflake.NextID(), credentialID, string(kind), windowStart.UTC().Format(time.RFC3339Nano), count, now)
	if err != nil {
		t.Fatalf("failed to seed usage counter: %v", err)
	}
}

// SeedSetting 插入测试设置数据
func SeedSetting(t *testing.T, database *sql.DB, key, value string) {
	t.Helper()

	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err := database.Exec(`
		INSERT INTO settings (key, value, updated_at) VALUES (?, ?, ?)
	`, key, value, now)
	if err != nil {
		t.Fatalf("failed to seed setting: %v", err)
	}
}

// ptrVal 将指针转换为 interface{}，nil 指针返回 nil
func ptrVal[T any](p *T) interface{} {
	if p == nil {
		return nil
	}
	return *p
}

// boolToInt 将布尔值转换为整数 (0/1)
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
