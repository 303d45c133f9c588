package store

import (
	"context"
	"sort"

	"github.com/oyaguma3/glasses-session-broker/pkg/model"
	"github.com/redis/go-redis/v9"
)

// registrationStore はRegistrationStoreインターフェースの実装。
// 登録にはTTLを設定しない。
type registrationStore struct {
	vc *ValkeyClient
}

// NewRegistrationStore は新しいRegistrationStoreを生成する。
func NewRegistrationStore(vc *ValkeyClient) RegistrationStore {
	return &registrationStore{vc: vc}
}

// Save は登録を保存する。
func (s *registrationStore) Save(ctx context.Context, reg *model.TpaServerRegistration) error {
	pipe := s.vc.Client().TxPipeline()
	pipe.HSet(ctx, KeyPrefixRegistration+reg.RegistrationID, StructToMap(reg))
	pipe.SAdd(ctx, KeyPrefixRegistrationPkg+reg.PackageName, reg.RegistrationID)
	pipe.SAdd(ctx, KeyRegistrationAll, reg.RegistrationID)
	if _, err := pipe.Exec(ctx); err != nil {
		return unavailable("HSET", KeyPrefixRegistration+reg.RegistrationID, err)
	}
	return nil
}

// Get は登録IDで登録を取得する。
func (s *registrationStore) Get(ctx context.Context, registrationID string) (*model.TpaServerRegistration, error) {
	m, err := s.vc.Client().HGetAll(ctx, KeyPrefixRegistration+registrationID).Result()
	if err != nil {
		return nil, unavailable("HGETALL", KeyPrefixRegistration+registrationID, err)
	}
	if len(m) == 0 {
		return nil, ErrKeyNotFound
	}
	return toRegistration(m)
}

// ListByPackage はパッケージ名に紐づく登録を登録日時順で返す。
func (s *registrationStore) ListByPackage(ctx context.Context, packageName string) ([]*model.TpaServerRegistration, error) {
	ids, err := s.vc.Client().SMembers(ctx, KeyPrefixRegistrationPkg+packageName).Result()
	if err != nil {
		return nil, unavailable("SMEMBERS", KeyPrefixRegistrationPkg+packageName, err)
	}
	return s.load(ctx, ids)
}

// List は全登録を登録日時順で返す。
func (s *registrationStore) List(ctx context.Context) ([]*model.TpaServerRegistration, error) {
	ids, err := s.vc.Client().SMembers(ctx, KeyRegistrationAll).Result()
	if err != nil {
		return nil, unavailable("SMEMBERS", KeyRegistrationAll, err)
	}
	return s.load(ctx, ids)
}

func (s *registrationStore) load(ctx context.Context, ids []string) ([]*model.TpaServerRegistration, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	pipe := s.vc.Client().Pipeline()
	cmds := make([]*redis.MapStringStringCmd, len(ids))
	for i, id := range ids {
		cmds[i] = pipe.HGetAll(ctx, KeyPrefixRegistration+id)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, unavailable("PIPELINE", KeyPrefixRegistration+"*", err)
	}

	regs := make([]*model.TpaServerRegistration, 0, len(ids))
	for _, cmd := range cmds {
		m := cmd.Val()
		if len(m) == 0 {
			continue
		}
		reg, err := toRegistration(m)
		if err != nil {
			return nil, err
		}
		regs = append(regs, reg)
	}
	sort.Slice(regs, func(i, j int) bool {
		if regs[i].RegisteredAt != regs[j].RegisteredAt {
			return regs[i].RegisteredAt < regs[j].RegisteredAt
		}
		return regs[i].RegistrationID < regs[j].RegistrationID
	})
	return regs, nil
}

// UpdateHeartbeat は最終ハートビート時刻を更新する。
func (s *registrationStore) UpdateHeartbeat(ctx context.Context, registrationID string, atMillis int64) error {
	return s.updateField(ctx, registrationID, "last_heartbeat_at", atMillis)
}

// SetStale はstaleフラグを更新する。
func (s *registrationStore) SetStale(ctx context.Context, registrationID string, stale bool) error {
	return s.updateField(ctx, registrationID, "stale", stale)
}

func (s *registrationStore) updateField(ctx context.Context, registrationID, field string, value any) error {
	key := KeyPrefixRegistration + registrationID
	n, err := s.vc.Client().Exists(ctx, key).Result()
	if err != nil {
		return unavailable("EXISTS", key, err)
	}
	if n == 0 {
		return ErrKeyNotFound
	}
	if err := s.vc.Client().HSet(ctx, key, field, value).Err(); err != nil {
		return unavailable("HSET", key, err)
	}
	return nil
}

func toRegistration(m map[string]string) (*model.TpaServerRegistration, error) {
	var reg model.TpaServerRegistration
	if err := MapToStruct(m, &reg); err != nil {
		return nil, err
	}
	reg.ParseServerURLs()
	return &reg, nil
}
