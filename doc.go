// Package assets provides a typed asset database and a binary asset
// pipeline for gogpu games.
//
// # Overview
//
// Games ship their models, shaders, textures, fonts and texts as one
// bundle file. At build time raw files are read, converted into
// GPU-independent records and written to data.bin. At startup the bundle is
// decoded and every record is turned into its runtime form, such as a GPU
// buffer or a shader module, and stored in a [TypeMap].
//
// # Quick Start
//
// Build the bundle (usually through the assetc command):
//
//	s := kinds.NewSerializer(assets.WithAssetDirectory("./assets"))
//	if _, err := s.Serialize(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// Load it in the game:
//
//	bc := assets.NewBuildContext(device, queue)
//	tm, err := kinds.NewDeserializer().DeserializeFile(ctx, "data.bin", bc)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	cube, err := assets.GetAsset[*models.Model](tm, "models", "cube")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer cube.Release()
//
// # Ownership
//
// Every asset lives in a [Storage] cell. [Get] hands out counted [Ref]
// handles; [Take] moves the asset out and succeeds only when no handle is
// alive. A failed take never loses the asset: it stays in place, or is
// returned inside the error ([TakeError], [DrainError], [CombineError]).
//
// A [Map] holds the assets of one Go type and a [TypeMap] groups maps by
// asset type name. Go methods cannot have type parameters, so the typed
// accessors are package functions: [MapInsert], [MapGet], [MapTake],
// [InsertAsset], [GetAsset], [TakeAsset] and friends.
//
// # Asset Kinds
//
// An asset kind is a raw record type implementing [RawAsset] plus a
// [Mapper] that moves it through the pipeline. [RawMapper] implements
// Mapper for any record type, so a kind only supplies a file reader and a
// ToAsset method. Built-in kinds live in the subpackages shaders, textures,
// models, fonts and texts; the kinds package registers all of them.
//
// # Bundle Format
//
// data.bin is a CBOR tag ([BundleTag]) wrapping [version, assets], where
// assets maps type names to asset names to encoded records. Records are
// encoded with a [Codec], [CBOR] by default.
//
// # Thread Safety
//
// Storage, Map, TypeMap and RawMapper are safe for concurrent use.
// Serializer and Deserializer run their mappers sequentially; raw files of
// one kind are read in parallel.
//
// # Logging
//
// The package logs through [log/slog]. By default nothing is logged; use
// [SetLogger] to enable output.
package assets
