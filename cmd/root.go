package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/selliott512/image-utils/internal/logging"
	"github.com/selliott512/image-utils/internal/projector"
)

const version = "1.0.0"

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "sphere2equirect [flags] IMAGE [IMAGE...]",
	Short: "Create equirectangular images from sphere images",
	Long: `sphere2equirect converts circular sphere images, such as fisheye captures
or rendered globes, into equirectangular (lat/lon) maps.

The camera model is orthographic by default; a non-zero --angular-size
switches to a perspective camera. The sphere's location in the input image
is given with the --in-* options and defaults to the largest inscribed
circle. Multiple partial views can be composited into one map with --multi.

Examples:
  # Project a fisheye capture with the default orthographic camera
  sphere2equirect moon.png

  # Perspective camera, bilinear sampling, cropped to the visible pixels
  sphere2equirect -a 30 -b -c -o moon-map.png moon.png

  # Composite two hemispheres into one map
  sphere2equirect --center-lon 0 -o map.png front.png
  sphere2equirect --center-lon 180 -m -o map.png back.png

  # Generate a grid test image
  sphere2equirect grid --width 1000 --height 1000 --step 25 grid.png

  # Start the HTTP API
  sphere2equirect serve --port 8080`,
	Args:         cobra.ArbitraryArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		// If no args, show help
		if len(args) == 0 {
			return cmd.Help()
		}
		return runProject(cmd, args)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.sphere2equirect.yaml)")
	rootCmd.PersistentFlags().String("log-format", "text", "log format (text|json)")
	viper.BindPFlag("log-format", rootCmd.PersistentFlags().Lookup("log-format"))

	// The following is sorted by long flag name.
	rootCmd.Flags().Float64P("angular-size", "a", 0, "angular size of the sphere in degrees (0 = orthographic)")
	rootCmd.Flags().BoolP("bilinear", "b", false, "use bilinear interpolation instead of nearest")
	rootCmd.Flags().Float64("center-lat", 0, "latitude at the center of the sphere in the input image")
	rootCmd.Flags().Float64("center-lon", 0, "longitude at the center of the sphere in the input image")
	rootCmd.Flags().BoolP("crop", "c", false, "crop the output to the smallest rectangle that keeps every visible pixel")
	rootCmd.Flags().BoolP("force", "f", false, "overwrite the output image")
	rootCmd.Flags().Int("height", 0, "output image height (default: input region height)")
	rootCmd.Flags().String("hidden-color", "black", "color for hidden pixels; \"transparent\" switches to an alpha canvas")
	rootCmd.Flags().IntP("in-begin-x", "x", 0, "X-coordinate of where the sphere begins in the input image (inclusive)")
	rootCmd.Flags().IntP("in-begin-y", "y", 0, "Y-coordinate of where the sphere begins in the input image (inclusive)")
	rootCmd.Flags().Int("in-end-x", 0, "X-coordinate of where the sphere ends in the input image (exclusive)")
	rootCmd.Flags().Int("in-end-y", 0, "Y-coordinate of where the sphere ends in the input image (exclusive)")
	rootCmd.Flags().IntP("in-size", "s", 0, "size (diameter) of the sphere in the input image")
	rootCmd.Flags().Int("in-size-x", 0, "horizontal size of the sphere in the input image")
	rootCmd.Flags().Int("in-size-y", 0, "vertical size of the sphere in the input image")
	rootCmd.Flags().Float64("min-angle", 0, "minimum angle between the line of sight and the sphere's surface")
	rootCmd.Flags().BoolP("multi", "m", false, "multiple write: reuse an existing output image as the base canvas")
	rootCmd.Flags().StringP("output", "o", "", "output filename (default: input name with \"-er\" before the extension)")
	rootCmd.Flags().BoolP("quiet", "q", false, "suppress warnings")
	rootCmd.Flags().Float64P("rotate", "r", 0, "degrees the sphere in the input image is rotated clockwise")
	rootCmd.Flags().Bool("stretch", false, "stretch the visible portion of the sphere to fill the output")
	rootCmd.Flags().BoolP("verbose", "v", false, "additional output")
	rootCmd.Flags().IntP("width", "w", 0, "output image width (default: twice the height)")
	rootCmd.Flags().Int("workers", 0, "parallel pixel workers (default: one per CPU)")

	// Bind flags to viper for root command
	viper.BindPFlag("angular-size", rootCmd.Flags().Lookup("angular-size"))
	viper.BindPFlag("bilinear", rootCmd.Flags().Lookup("bilinear"))
	viper.BindPFlag("center-lat", rootCmd.Flags().Lookup("center-lat"))
	viper.BindPFlag("center-lon", rootCmd.Flags().Lookup("center-lon"))
	viper.BindPFlag("crop", rootCmd.Flags().Lookup("crop"))
	viper.BindPFlag("force", rootCmd.Flags().Lookup("force"))
	viper.BindPFlag("height", rootCmd.Flags().Lookup("height"))
	viper.BindPFlag("hidden-color", rootCmd.Flags().Lookup("hidden-color"))
	viper.BindPFlag("in-begin-x", rootCmd.Flags().Lookup("in-begin-x"))
	viper.BindPFlag("in-begin-y", rootCmd.Flags().Lookup("in-begin-y"))
	viper.BindPFlag("in-end-x", rootCmd.Flags().Lookup("in-end-x"))
	viper.BindPFlag("in-end-y", rootCmd.Flags().Lookup("in-end-y"))
	viper.BindPFlag("in-size", rootCmd.Flags().Lookup("in-size"))
	viper.BindPFlag("in-size-x", rootCmd.Flags().Lookup("in-size-x"))
	viper.BindPFlag("in-size-y", rootCmd.Flags().Lookup("in-size-y"))
	viper.BindPFlag("min-angle", rootCmd.Flags().Lookup("min-angle"))
	viper.BindPFlag("multi", rootCmd.Flags().Lookup("multi"))
	viper.BindPFlag("output", rootCmd.Flags().Lookup("output"))
	viper.BindPFlag("quiet", rootCmd.Flags().Lookup("quiet"))
	viper.BindPFlag("rotate", rootCmd.Flags().Lookup("rotate"))
	viper.BindPFlag("stretch", rootCmd.Flags().Lookup("stretch"))
	viper.BindPFlag("verbose", rootCmd.Flags().Lookup("verbose"))
	viper.BindPFlag("width", rootCmd.Flags().Lookup("width"))
	viper.BindPFlag("workers", rootCmd.Flags().Lookup("workers"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".sphere2equirect" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".sphere2equirect")
	}

	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		logging.New("debug", viper.GetString("log-format")).
			Debug("using config file", "path", viper.ConfigFileUsed())
	}
}

func runProject(cmd *cobra.Command, args []string) error {
	logger := logging.FromFlags(viper.GetBool("verbose"), viper.GetBool("quiet"), viper.GetString("log-format"))

	opts := &projector.Options{
		AngularSize: viper.GetFloat64("angular-size"),
		MinAngle:    viper.GetFloat64("min-angle"),
		CenterLat:   viper.GetFloat64("center-lat"),
		CenterLon:   viper.GetFloat64("center-lon"),
		Rotate:      viper.GetFloat64("rotate"),
		Stretch:     viper.GetBool("stretch"),
		Bilinear:    viper.GetBool("bilinear"),
		Crop:        viper.GetBool("crop"),
		Multi:       viper.GetBool("multi"),
		Force:       viper.GetBool("force"),
		HiddenColor: viper.GetString("hidden-color"),
		Width:       intFlag(cmd, "width"),
		Height:      intFlag(cmd, "height"),
		Region: projector.RegionSpec{
			BeginX: intFlag(cmd, "in-begin-x"),
			BeginY: intFlag(cmd, "in-begin-y"),
			EndX:   intFlag(cmd, "in-end-x"),
			EndY:   intFlag(cmd, "in-end-y"),
			Size:   intFlag(cmd, "in-size"),
			SizeX:  intFlag(cmd, "in-size-x"),
			SizeY:  intFlag(cmd, "in-size-y"),
		},
		Output:  viper.GetString("output"),
		Workers: viper.GetInt("workers"),
	}

	return projector.New(opts, logger).Run(args)
}

// intFlag returns the flag's value, or nil when it was not specified.
// Zero is a valid value for the region coordinates, so presence matters.
func intFlag(cmd *cobra.Command, name string) *int {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v := viper.GetInt(name)
	return &v
}
