package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envPrefix = "PAYSLIP"

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Tesseract TesseractConfig `mapstructure:"tesseract"`
	Report    ReportConfig    `mapstructure:"report"`
	Template  TemplateConfig  `mapstructure:"template"`
	Log       LogConfig       `mapstructure:"log"`
	Watch     WatchConfig     `mapstructure:"watch"`
}

type ServerConfig struct {
	Port               string `mapstructure:"port"`
	MaxFileSize        int64  `mapstructure:"max_file_size"`
	MaxMultipartMemory int64  `mapstructure:"max_multipart_memory"`
}

type TesseractConfig struct {
	DataPath  string `mapstructure:"data_path"`
	Languages string `mapstructure:"languages"`
}

type ReportConfig struct {
	// Encoding of .txt reports: utf-8 (BOM-aware) or windows-1251.
	Encoding   string   `mapstructure:"encoding"`
	Password   string   `mapstructure:"password"`
	Extensions []string `mapstructure:"extensions"`
	// PDFs with less extracted text than this are OCR'd page by page.
	MinTextLength int `mapstructure:"min_text_length"`
}

type TemplateConfig struct {
	Delimiter      string `mapstructure:"delimiter"`
	GroupSeparator string `mapstructure:"group_separator"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Pretty bool   `mapstructure:"pretty"`
}

type WatchConfig struct {
	Debounce time.Duration `mapstructure:"debounce"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.max_file_size", 10*1024*1024) // 10 MB
	v.SetDefault("server.max_multipart_memory", 32<<20)

	v.SetDefault("tesseract.data_path", "/usr/share/tesseract-ocr/5/tessdata/")
	v.SetDefault("tesseract.languages", "ukr+eng")

	v.SetDefault("report.encoding", EncodingUTF8)
	v.SetDefault("report.password", "")
	v.SetDefault("report.extensions", []string{".txt", ".pdf", ".png", ".jpg", ".jpeg", ".tif", ".tiff"})
	v.SetDefault("report.min_text_length", 20)

	v.SetDefault("template.delimiter", "@$#%")
	v.SetDefault("template.group_separator", " ")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	v.SetDefault("watch.debounce", 500*time.Millisecond)
}

// Report encodings.
const (
	EncodingUTF8        = "utf-8"
	EncodingWindows1251 = "windows-1251"
)

// LoadConfig reads defaults, the optional config file at path and the
// environment (PAYSLIP_SECTION_KEY, plus SERVER_PORT and TESSDATA_PREFIX).
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("server.port", envPrefix+"_SERVER_PORT", "SERVER_PORT"); err != nil {
		return nil, err
	}
	if err := v.BindEnv("tesseract.data_path", envPrefix+"_TESSERACT_DATA_PATH", "TESSDATA_PREFIX"); err != nil {
		return nil, err
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Template.Delimiter == "" {
		return fmt.Errorf("template.delimiter cannot be empty")
	}
	c.Report.Encoding = strings.ToLower(strings.TrimSpace(c.Report.Encoding))
	switch c.Report.Encoding {
	case EncodingUTF8, EncodingWindows1251:
	case "", "utf8":
		c.Report.Encoding = EncodingUTF8
	case "cp1251":
		c.Report.Encoding = EncodingWindows1251
	default:
		return fmt.Errorf("unsupported report.encoding %q", c.Report.Encoding)
	}
	if len(c.Report.Extensions) == 0 {
		return fmt.Errorf("report.extensions cannot be empty")
	}
	for i, ext := range c.Report.Extensions {
		c.Report.Extensions[i] = "." + strings.TrimPrefix(strings.ToLower(strings.TrimSpace(ext)), ".")
	}
	if c.Watch.Debounce < 0 {
		return fmt.Errorf("watch.debounce cannot be negative")
	}
	return nil
}

// LoadEnvFile loads variables from .env files into the process environment.
// Missing files are ignored.
func LoadEnvFile(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
	}
	return nil
}
