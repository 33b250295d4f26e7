package configloader

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type validator interface {
	Validate() error
}

// LoadConfig 读取 yaml 配置文件，展开 ${ENV} 后解码到 v。
// v 实现了 Validate 时会在解码后校验。
func LoadConfig(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s failed: %w", path, err)
	}

	expanded := os.ExpandEnv(string(data))
	dec := yaml.NewDecoder(bytes.NewBufferString(expanded))
	dec.KnownFields(true)
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decode config %s failed: %w", path, err)
	}

	if vv, ok := v.(validator); ok {
		if err := vv.Validate(); err != nil {
			return fmt.Errorf("invalid config %s: %w", path, err)
		}
	}
	return nil
}
