package cmd

import (
	"fmt"
	"os"
	"path"

	"github.com/asaskevich/govalidator"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/christopherkarani/blend-client/client"
	"github.com/christopherkarani/blend-client/config"
	"github.com/christopherkarani/blend-client/core"
)

var (
	cfgFile     string
	cfg         core.Config
	debugMode   bool
	initialized bool
)

var rootCmd = cobra.Command{
	Use:   "blend",
	Short: "client for blend lending pools",
}

func init() {
	cobra.OnInitialize(initConfig, initLogging, initDone)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file. default is ~/.blend-client.yaml")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "enable or disable debug model")
	rootCmd.PersistentFlags().String("policy", "cache", "cache policy: no-cache, cache or refresh")
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute(ver string) {
	rootCmd.Version = ver
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func initConfig() {
	if initialized {
		return
	}

	if cfgFile == "" {
		dir, err := homedir.Dir()
		if err != nil {
			panic(err)
		}

		filename := path.Join(dir, ".blend-client.yaml")
		info, err := os.Stat(filename)
		if !os.IsNotExist(err) && !info.IsDir() {
			cfgFile = filename
		}
	}

	if cfgFile != "" {
		logrus.Debugln("use config file", cfgFile)
	}

	if err := config.Load(cfgFile, &cfg); err != nil {
		panic(err)
	}
}

func initLogging() {
	if initialized {
		return
	}

	if debugMode {
		logrus.SetLevel(logrus.DebugLevel)
	} else {
		logrus.SetLevel(logrus.InfoLevel)
	}

	formatter := &logrus.TextFormatter{
		FullTimestamp: true,
	}
	logrus.SetFormatter(formatter)
}

func initDone() {
	initialized = true
}

func provideClient() *client.Client {
	return client.New(&cfg)
}

func policyFrom(cmd *cobra.Command) (core.CachePolicy, error) {
	p, _ := cmd.Flags().GetString("policy")
	if !govalidator.IsIn(p, "no-cache", "cache", "refresh") {
		return core.CachePolicy{}, fmt.Errorf("invalid cache policy %q, expect no-cache, cache or refresh", p)
	}

	switch p {
	case "no-cache":
		return core.NoCache(), nil
	case "refresh":
		return core.RefreshCache(), nil
	default:
		return core.UseCache(0), nil
	}
}
