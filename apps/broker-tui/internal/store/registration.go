package store

import (
	"context"
	"sort"

	"github.com/oyaguma3/glasses-session-broker/pkg/model"
	"github.com/redis/go-redis/v9"
)

// RegistrationStore はTPAサーバー登録の読み取りを提供する。
type RegistrationStore struct {
	client *redis.Client
}

// NewRegistrationStore は新しいRegistrationStoreを生成する。
func NewRegistrationStore(client *redis.Client) *RegistrationStore {
	return &RegistrationStore{client: client}
}

// Get は指定IDの登録を取得する。
func (s *RegistrationStore) Get(ctx context.Context, id string) (*model.TpaServerRegistration, error) {
	cmd := s.client.HGetAll(ctx, RegistrationKey(id))
	if err := cmd.Err(); err != nil {
		return nil, err
	}
	if len(cmd.Val()) == 0 {
		return nil, ErrRegistrationNotFound
	}
	return decodeRegistration(cmd)
}

// List は全登録をパッケージ名、登録時刻の順で返す。
// インデックスに残っているが本体が消えた登録は読み飛ばす。
func (s *RegistrationStore) List(ctx context.Context) ([]*model.TpaServerRegistration, error) {
	ids, err := s.client.SMembers(ctx, KeyRegistrationAll).Result()
	if err != nil {
		return nil, err
	}
	return s.load(ctx, ids)
}

// ListByPackage は指定パッケージの登録を返す。
func (s *RegistrationStore) ListByPackage(ctx context.Context, packageName string) ([]*model.TpaServerRegistration, error) {
	ids, err := s.client.SMembers(ctx, RegistrationPackageKey(packageName)).Result()
	if err != nil {
		return nil, err
	}
	return s.load(ctx, ids)
}

// Count はインデックス上の登録数を返す。
func (s *RegistrationStore) Count(ctx context.Context) (int64, error) {
	return s.client.SCard(ctx, KeyRegistrationAll).Result()
}

func (s *RegistrationStore) load(ctx context.Context, ids []string) ([]*model.TpaServerRegistration, error) {
	regs := make([]*model.TpaServerRegistration, 0, len(ids))
	if len(ids) == 0 {
		return regs, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = RegistrationKey(id)
	}
	cmds, err := hgetAll(ctx, s.client, keys)
	if err != nil {
		return nil, err
	}

	for _, cmd := range cmds {
		if cmd.Err() != nil || len(cmd.Val()) == 0 {
			continue
		}
		reg, err := decodeRegistration(cmd)
		if err != nil {
			continue
		}
		regs = append(regs, reg)
	}

	sort.Slice(regs, func(i, j int) bool {
		if regs[i].PackageName != regs[j].PackageName {
			return regs[i].PackageName < regs[j].PackageName
		}
		return regs[i].RegisteredAt < regs[j].RegisteredAt
	})
	return regs, nil
}

func decodeRegistration(cmd *redis.MapStringStringCmd) (*model.TpaServerRegistration, error) {
	var reg model.TpaServerRegistration
	if err := cmd.Scan(&reg); err != nil {
		return nil, err
	}
	reg.ParseServerURLs()
	return &reg, nil
}
