package config

import (
	"flag"
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config drives cmd/triedemo: which corpus to load and the default fuzzy
// search parameters to demonstrate against it.
type Config struct {
	Env       string `yaml:"env" env-default:"local"`
	Corpus    string `yaml:"corpus" env-default:"./data/words.txt"`
	Tolerance int    `yaml:"tolerance" env-default:"1"`
	Strategy  string `yaml:"strategy" env-default:"LIBERAL"`
	Stem      bool   `yaml:"stem" env-default:"false"`
}

// MustLoad reads the config file, then applies flag overrides on top of
// whatever env/defaults cleanenv already resolved. Priority: flag > env >
// default.
func MustLoad() *Config {
	configPathFlag := flag.String("config", "", "path to the config file")
	corpusFlag := flag.String("corpus", "", "path to a newline-delimited word corpus")
	toleranceFlag := flag.Int("tolerance", -1, "default fuzzy tolerance (negative: use config value)")
	strategyFlag := flag.String("strategy", "", "default matching strategy name")
	flag.Parse()

	configPath := *configPathFlag
	if configPath == "" {
		configPath = fetchConfigPath()
	}

	var cfg Config
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		// No config file on disk is not fatal here: triedemo can run on
		// cleanenv's struct defaults alone.
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			panic("error loading config from environment: " + err.Error())
		}
	} else if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		panic("error loading config file: " + err.Error())
	}

	if *corpusFlag != "" {
		cfg.Corpus = *corpusFlag
	}
	if *toleranceFlag >= 0 {
		cfg.Tolerance = *toleranceFlag
	}
	if *strategyFlag != "" {
		cfg.Strategy = *strategyFlag
	}

	return &cfg
}

// fetchConfigPath resolves the config path from the environment, falling
// back to a repo-relative default if CONFIG_PATH is unset.
func fetchConfigPath() string {
	res := os.Getenv("CONFIG_PATH")
	if res == "" {
		res = "./config/config_local.yaml"
	}
	fmt.Println("config path:", res)
	return res
}
