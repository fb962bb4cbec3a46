package cmd

var Version = "dev" // ビルド時に設定される

func init() {
	RootCmd.Version = Version
	RootCmd.SetVersionTemplate(AppName + " version {{.Version}}\n")
}
