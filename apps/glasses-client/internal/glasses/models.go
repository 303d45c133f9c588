package glasses

import (
	"fmt"
	"sort"

	"k8s.io/utils/clock"
)

// モデル名
const (
	ModelVirtual  = "virtual"
	ModelDisplay  = "display"
	ModelCamera   = "camera"
	ModelHeadless = "headless"
)

var models = map[string]Capabilities{
	ModelVirtual: {Model: ModelVirtual, HasDisplay: true, HasMicrophone: true, HasCamera: true, HasSpeaker: true},
	ModelDisplay: {Model: ModelDisplay, HasDisplay: true, HasMicrophone: true},
	ModelCamera:  {Model: ModelCamera, HasMicrophone: true, HasCamera: true, HasSpeaker: true},
	// 表示もセンサーも持たない。接続状態だけを通知する。
	ModelHeadless: {Model: ModelHeadless},
}

// New はモデル名に対応するDeviceを生成する。
func New(model string, clk clock.WithTicker) (Device, error) {
	caps, ok := models[model]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownModel, model)
	}
	if model == ModelHeadless {
		return NewBase(caps), nil
	}
	return NewSimulated(caps, clk), nil
}

// Models は登録済みのモデル名を返す。
func Models() []string {
	names := make([]string, 0, len(models))
	for name := range models {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
