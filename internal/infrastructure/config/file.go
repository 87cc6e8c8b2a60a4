package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// loadFromFile 从 YAML 文件加载配置，仅覆盖文件中出现的字段
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	return nil
}
