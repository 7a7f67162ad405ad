/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"github.com/sirupsen/logrus"

	"github.com/cloudscan/aws-resource-mapper/builder"
	"github.com/cloudscan/aws-resource-mapper/csv"
	"github.com/cloudscan/aws-resource-mapper/drawio"
	"github.com/cloudscan/aws-resource-mapper/filepathparser"
	"github.com/cloudscan/aws-resource-mapper/hcl"
	"github.com/cloudscan/aws-resource-mapper/inventory"
	"github.com/cloudscan/aws-resource-mapper/json"
	"github.com/cloudscan/aws-resource-mapper/mapper"
	"github.com/cloudscan/aws-resource-mapper/types"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var log = logrus.New()

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Build and export the resource map from a scan results file",
	Long: `The run command performs the main mapping workflow:

1. Loads discovered resources from the scan results file
2. Infers relationships between resources using per-type rules
3. Lays the graph out under the selected strategy
4. Reports data-quality issues (duplicates, dangling references) to issues.csv
5. Exports graph.json plus optional draw.io XML and Terraform import blocks

Examples:
  # Regional layout, JSON export only
  aws-resource-mapper run --scanFile ./scan.json

  # Layered layout with a draw.io diagram
  aws-resource-mapper run --scanFile ./scan.json --layout layered --drawio

  # Generate Terraform import blocks for the discovered resources
  aws-resource-mapper run --scanFile ./scan.json --importBlocks`,
	Run: func(cmd *cobra.Command, args []string) {
		logVerbosity, _ := cmd.Flags().GetString("verbosity")
		logLevel, err := logrus.ParseLevel(logVerbosity)
		if err != nil {
			log.Fatalf("Invalid log level: %s", logVerbosity)
		}
		log.SetLevel(logLevel)
		log.SetFormatter(&logrus.TextFormatter{})
		if viper.GetBool("structuredLogs") {
			log.SetFormatter(&logrus.JSONFormatter{})
		}

		for key, value := range viper.GetViper().AllSettings() {
			log.Debugf("Command Flag: %s = %s", key, value)
		}

		scanFilePath, err := filepathparser.ParsePath(viper.GetString("scanFile"))
		if err != nil {
			log.Fatalf("Error getting scan file path: %v", err)
		}
		workingFolderPath, err := filepathparser.ParsePath(viper.GetString("workingFolderPath"))
		if err != nil {
			log.Fatalf("Error getting working folder path: %v", err)
		}

		hierarchyType := types.HierarchyType(viper.GetString("layout"))
		if !hierarchyType.IsValidHierarchyType() {
			log.Fatalf("Invalid layout: %s", hierarchyType)
		}

		layoutConfig := types.LayoutConfig{
			VerticalSpacing:   viper.GetFloat64("verticalSpacing"),
			HorizontalSpacing: viper.GetFloat64("horizontalSpacing"),
			HierarchyType:     hierarchyType,
		}

		if viper.InConfig("servicetiers") {
			serviceTiers := types.DefaultServiceTiers()
			for serviceType, tier := range viper.GetStringMap("servicetiers") {
				tierValue, ok := tier.(int)
				if !ok {
					log.Fatalf("Invalid tier for service type %s: %v", serviceType, tier)
				}
				serviceTiers[serviceType] = tierValue
			}
			layoutConfig.ServiceTiers = serviceTiers
		}

		typeMappings := hcl.DefaultTypeMappings()
		if viper.InConfig("terraformtypemappings") {
			typeMappingsRaw := viper.Get("terraformtypemappings").([]any)
			for _, rawTypeMapping := range typeMappingsRaw {
				typeMappingMap := rawTypeMapping.(map[string]any)
				typeMappings = append(typeMappings, types.TerraformTypeMapping{
					Type:          typeMappingMap["type"].(string),
					TerraformType: typeMappingMap["terraformtype"].(string),
				})
			}
		}

		inventoryClient := inventory.NewInventoryClient(
			scanFilePath,
			viper.GetStringSlice("ignoreResourceIDPatterns"),
			log,
		)

		graphClient := builder.NewGraphClient(log)

		jsonClient := json.NewJsonClient(
			workingFolderPath,
			log,
		)

		issueCsvClient := csv.NewIssueCsvClient(
			workingFolderPath,
			log,
		)

		drawioClient := drawio.NewDrawioClient(
			workingFolderPath,
			log,
		)

		hclClient := hcl.NewHclClient(
			workingFolderPath,
			typeMappings,
			log,
		)

		mapperClient := mapper.NewMapperClient(
			workingFolderPath,
			layoutConfig,
			viper.GetBool("drawio"),
			viper.GetBool("importBlocks"),
			inventoryClient,
			graphClient,
			issueCsvClient,
			jsonClient,
			drawioClient,
			hclClient,
			log,
		)

		mapperClient.Map()
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.PersistentFlags().StringP("scanFile", "s", "scan.json", "Scan results file to load")
	viper.BindPFlag("scanFile", runCmd.PersistentFlags().Lookup("scanFile"))
	runCmd.PersistentFlags().StringP("workingFolderPath", "w", ".", "Working folder path to use")
	viper.BindPFlag("workingFolderPath", runCmd.PersistentFlags().Lookup("workingFolderPath"))
	runCmd.PersistentFlags().StringP("layout", "l", "regional", "Layout strategy (regional, layered, grouped, circular)")
	viper.BindPFlag("layout", runCmd.PersistentFlags().Lookup("layout"))
	runCmd.PersistentFlags().Float64P("verticalSpacing", "y", 150, "Vertical node spacing")
	viper.BindPFlag("verticalSpacing", runCmd.PersistentFlags().Lookup("verticalSpacing"))
	runCmd.PersistentFlags().Float64P("horizontalSpacing", "x", 200, "Horizontal node spacing")
	viper.BindPFlag("horizontalSpacing", runCmd.PersistentFlags().Lookup("horizontalSpacing"))
	runCmd.PersistentFlags().BoolP("drawio", "d", false, "Export the diagram as draw.io XML")
	viper.BindPFlag("drawio", runCmd.PersistentFlags().Lookup("drawio"))
	runCmd.PersistentFlags().BoolP("importBlocks", "i", false, "Generate Terraform import blocks for discovered resources")
	viper.BindPFlag("importBlocks", runCmd.PersistentFlags().Lookup("importBlocks"))
}
