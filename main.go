package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// defaultMaxDelta is the widest allowed gap between a photo's capture time
// and the nearest location sample: 15 minutes.
const defaultMaxDelta = int64(15 * 60)

func main() {
	if len(os.Args) < 2 {
		showUsage()
		return
	}

	command := os.Args[1]

	switch command {
	case "tag":
		runTag(os.Args[2:])

	case "scan":
		if len(os.Args) < 3 {
			fmt.Println("Usage: ./photo-geotag scan /photos/path [more paths...]")
			os.Exit(1)
		}
		if err := scanPhotos(os.Args[2:]); err != nil {
			log.Fatal(err)
		}

	case "help", "--help", "-h":
		showUsage()

	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		showUsage()
		os.Exit(1)
	}
}

// runTag drives the full pipeline: location history in, resolved
// coordinates out, geotags written.
func runTag(args []string) {
	if len(args) < 2 {
		fmt.Println("Usage: ./photo-geotag tag /path/to/history.json /photos/path... [--max-delta N] [--offset N] [--tz ZONE] [--dry-run] [--no-cache] [--verbose]")
		os.Exit(1)
	}

	geoPath := args[0]

	maxDelta := defaultMaxDelta
	offset := int64(0)
	zoneName := ""
	dryRun := false
	noCache := false
	verbose := false
	var photoArgs []string

	for i := 1; i < len(args); i++ {
		switch args[i] {
		case "--max-delta":
			maxDelta = int64(flagValue(args, &i, "--max-delta"))
		case "--offset":
			offset = int64(flagValue(args, &i, "--offset"))
		case "--tz":
			if i+1 >= len(args) {
				log.Fatalf("--tz requires a zone name")
			}
			zoneName = args[i+1]
			i++
		case "--dry-run":
			dryRun = true
		case "--no-cache":
			noCache = true
		case "--verbose":
			verbose = true
		default:
			if strings.HasPrefix(args[i], "--") {
				log.Fatalf("Unknown flag: %s", args[i])
			}
			photoArgs = append(photoArgs, args[i])
		}
	}

	if len(photoArgs) == 0 {
		log.Fatalf("No photo paths given")
	}
	if maxDelta < 0 {
		log.Fatalf("--max-delta must not be negative")
	}

	zone := time.Local
	if zoneName != "" {
		loaded, err := time.LoadLocation(zoneName)
		if err != nil {
			log.Fatalf("Invalid timezone %s: %v", zoneName, err)
		}
		zone = loaded
	}

	var store SampleStore
	if !noCache {
		store = newFileSampleStore(geoPath)
	}

	// Dataset problems are fatal to the whole run; everything after this
	// point fails per photo only.
	idx, err := openLocationIndex(geoPath, store)
	if err != nil {
		log.Fatalf("Failed to load location history: %v", err)
	}
	fmt.Printf("📍 Loaded %d location samples from %s\n", idx.Len(), geoPath)

	files, err := collectPhotoFiles(photoArgs)
	if err != nil {
		log.Fatal(err)
	}
	if len(files) == 0 {
		fmt.Println("⚠️  No photo files to process.")
		return
	}

	if dryRun {
		fmt.Println("🔍 DRY RUN MODE - No files will be modified")
	} else if !confirmTagRun(geoPath, len(files)) {
		fmt.Println("❌ Operation cancelled by user.")
		return
	}
	fmt.Println()

	summary := &runSummary{}
	for _, path := range files {
		tagPhoto(idx, path, zone, offset, maxDelta, dryRun, verbose, summary)
	}
	summary.print(dryRun)
}

// tagPhoto runs one photo through extract -> search -> encode -> write.
// Every failure stays scoped to this photo; the batch always continues.
func tagPhoto(idx *LocationIndex, path string, zone *time.Location, offset, maxDelta int64, dryRun, verbose bool, summary *runSummary) {
	photo := NewPhoto(path, zone)

	ts, err := photo.Timestamp()
	if err != nil {
		fmt.Printf("⚠️  %s: %v\n", path, err)
		summary.failed++
		return
	}

	lat, lng, err := idx.Search(ts+offset, maxDelta)
	if err != nil {
		fmt.Printf("⚠️  %s: %v\n", path, err)
		summary.failed++
		return
	}

	fmt.Println(outcomeLine(path, ts+offset, lat, lng, zone))
	if verbose {
		origOff, digiOff := photo.Offsets()
		if origOff != "" {
			fmt.Printf("   UTC offset (original): %s (not applied)\n", origOff)
		}
		if digiOff != "" {
			fmt.Printf("   UTC offset (digitized): %s (not applied)\n", digiOff)
		}
	}

	if dryRun {
		summary.tagged++
		return
	}

	if err := photo.WriteLatLng(lat, lng); err != nil {
		if isAlreadyGeotagged(err) {
			fmt.Printf("⏭️  Skipping %s: already has GPS data\n", path)
			summary.skipped++
			return
		}
		fmt.Printf("⚠️  %s: %v\n", path, err)
		summary.failed++
		return
	}
	summary.tagged++
}

// flagValue parses the integer value following a flag, advancing the index.
func flagValue(args []string, i *int, name string) int {
	if *i+1 >= len(args) {
		log.Fatalf("%s requires a value", name)
	}
	v, err := strconv.Atoi(args[*i+1])
	if err != nil {
		log.Fatalf("Invalid value for %s: %s", name, args[*i+1])
	}
	*i++
	return v
}

// confirmTagRun prompts before a live run rewrites photo metadata in place.
func confirmTagRun(geoPath string, count int) bool {
	fmt.Println()
	fmt.Println("═══════════════════════════════════════════")
	fmt.Printf("  📋 OPERATION CONFIRMATION\n")
	fmt.Println("═══════════════════════════════════════════")
	fmt.Printf("History: %s\n", geoPath)
	fmt.Printf("Photos:  %d\n", count)
	fmt.Printf("Mode:    ⚠️  LIVE RUN (EXIF data will be written in place)\n")
	fmt.Println("═══════════════════════════════════════════")
	fmt.Print("Continue with this operation? [y/N]: ")

	reader := bufio.NewReader(os.Stdin)
	response, _ := reader.ReadString('\n')
	response = strings.TrimSpace(strings.ToLower(response))

	return response == "y" || response == "yes"
}

// showUsage prints the command overview
func showUsage() {
	fmt.Println("📷 Photo Geotag Tool")
	fmt.Println()
	fmt.Println("Writes GPS EXIF tags using a Google Takeout location history.")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  tag   /path/to/history.json /photos/path... [options]")
	fmt.Println("        Resolve each photo's position from the history and write it")
	fmt.Println("        into the photo's EXIF GPS block.")
	fmt.Println()
	fmt.Println("        --max-delta N   Max seconds between photo time and nearest sample (default 900)")
	fmt.Println("        --offset N      Seconds added to each photo timestamp before matching")
	fmt.Println("        --tz ZONE       IANA timezone for EXIF timestamps (default: local)")
	fmt.Println("        --dry-run       Print what would be written without modifying files")
	fmt.Println("        --no-cache      Ignore the compiled history cache and re-parse the dataset")
	fmt.Println("        --verbose       Also print the (unapplied) UTC offset tags")
	fmt.Println()
	fmt.Println("  scan  /photos/path...")
	fmt.Println("        Read-only report of which photos have a capture timestamp and")
	fmt.Println("        which already carry GPS data.")
	fmt.Println()
	fmt.Println("Download your location history from: https://takeout.google.com/")
}
