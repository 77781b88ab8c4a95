package schema

// Block paths used by the built-in Android options.
const (
	BlockPlugins         = "plugins"
	BlockAndroid         = "android"
	BlockDefaultConfig   = "android.defaultConfig"
	BlockBuildType       = "android.buildTypes.{variant}"
	BlockCompileOptions  = "android.compileOptions"
	BlockPackaging       = "android.packaging.resources"
	BlockDependencies    = "dependencies"
	VariantBlockSegment  = "{variant}"
	DefaultAndroidPlugin = "com.android.application"
)

// Keys of the built-in Android options.
const (
	KeyPlugins                      = "plugins"
	KeyNamespace                    = "namespace"
	KeyApplicationID                = "applicationId"
	KeyCompileSdk                   = "compileSdk"
	KeyMinSdk                       = "minSdk"
	KeyTargetSdk                    = "targetSdk"
	KeyNdkVersion                   = "ndkVersion"
	KeyVersionCode                  = "versionCode"
	KeyVersionName                  = "versionName"
	KeyMultiDexEnabled              = "multiDexEnabled"
	KeyManifestPlaceholders         = "manifestPlaceholders"
	KeyMinifyEnabled                = "minifyEnabled"
	KeyShrinkResources              = "shrinkResources"
	KeyProguardFiles                = "proguardFiles"
	KeySigningConfig                = "signingConfig"
	KeyCoreLibraryDesugaringEnabled = "coreLibraryDesugaringEnabled"
	KeyDesugarLibrary               = "desugarLibrary"
	KeyPackagingExcludes            = "packagingExcludes"
	KeyProjectDependencies          = "projectDependencies"
	KeyDependencies                 = "dependencies"
)

// Android returns a schema holding the options of an Android application
// module build file.
func Android() *Schema {
	s := New()
	for _, opt := range androidOptions() {
		s.MustRegister(opt)
	}
	return s
}

func androidOptions() []BuildOption {
	return []BuildOption{
		{
			Key: KeyPlugins, Type: TypeStringList, Default: []string{DefaultAndroidPlugin},
			Merge: MergeAppend, Block: BlockPlugins, Property: "id", Render: RenderCall,
			Description: "Gradle plugin ids applied to the module",
		},
		{
			Key: KeyNamespace, Type: TypeString, Block: BlockAndroid,
			Description: "Kotlin/Java namespace of generated R and BuildConfig classes",
		},
		{
			Key: KeyApplicationID, Type: TypeString, Required: true, Block: BlockDefaultConfig,
			Description: "unique application id",
		},
		{
			Key: KeyCompileSdk, Type: TypeInt, Default: 34, Block: BlockAndroid,
			Description: "API level compiled against",
		},
		{
			Key: KeyMinSdk, Type: TypeInt, Default: 21, Block: BlockDefaultConfig,
			Description: "lowest supported API level",
		},
		{
			Key: KeyTargetSdk, Type: TypeInt, Default: 34, Block: BlockDefaultConfig,
			Description: "API level the app is tested against",
		},
		{
			Key: KeyNdkVersion, Type: TypeVersion, Block: BlockAndroid,
			Description: "side-by-side NDK version",
		},
		{
			Key: KeyVersionCode, Type: TypeInt, Default: 1, Block: BlockDefaultConfig,
			Description: "monotonic internal version number",
		},
		{
			Key: KeyVersionName, Type: TypeString, Default: "1.0", Block: BlockDefaultConfig,
			Description: "user visible version",
		},
		{
			Key: KeyMultiDexEnabled, Type: TypeBool, Default: false, Block: BlockDefaultConfig,
		},
		{
			Key: KeyManifestPlaceholders, Type: TypeStringList, Default: []string{},
			Merge: MergeAppend, Block: BlockDefaultConfig, Render: RenderMapEntries,
			Description: "key=value pairs substituted into AndroidManifest.xml",
		},
		{
			Key: KeyMinifyEnabled, Type: TypeBool, Default: false, Block: BlockBuildType,
			Property:    "isMinifyEnabled",
			Description: "R8 code shrinking and obfuscation",
		},
		{
			Key: KeyShrinkResources, Type: TypeBool, Default: false, Block: BlockBuildType,
			Property:    "isShrinkResources",
			Description: "removal of unused resources",
		},
		{
			Key: KeyProguardFiles, Type: TypeStringList, Default: []string{},
			Merge: MergeAppend, Block: BlockBuildType, Render: RenderFileCall,
		},
		{
			Key: KeySigningConfig, Type: TypeString, Block: BlockBuildType, Render: RenderSigningRef,
			Description: "name of the signing config used for the variant",
		},
		{
			Key: KeyCoreLibraryDesugaringEnabled, Type: TypeBool, Default: false,
			Block: BlockCompileOptions, Property: "isCoreLibraryDesugaringEnabled",
		},
		{
			Key: KeyDesugarLibrary, Type: TypeString, Block: BlockDependencies,
			Property: "coreLibraryDesugaring", Render: RenderCall,
			Description: "group:artifact:version of the desugaring library",
		},
		{
			Key: KeyPackagingExcludes, Type: TypeStringList, Default: []string{},
			Merge: MergeAppend, Block: BlockPackaging, Property: "excludes", Render: RenderSetAppend,
			Description: "glob patterns left out of the packaged artifact",
		},
		{
			Key: KeyProjectDependencies, Type: TypeStringList, Default: []string{},
			Merge: MergeAppend, Block: BlockDependencies, Property: "implementation", Render: RenderProjectCall,
		},
		{
			Key: KeyDependencies, Type: TypeStringList, Default: []string{},
			Merge: MergeAppend, Block: BlockDependencies, Property: "implementation", Render: RenderCall,
			Description: "group:artifact:version implementation dependencies",
		},
	}
}
